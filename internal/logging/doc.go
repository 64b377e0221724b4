// Package logging builds the slog loggers moviediary commands share.
//
// Console output is one line per record with the component as a bracketed
// tag and the movie title quoted after the message; JSON output uses the
// standard slog handler with a ts key. Every record of one invocation carries
// a session_id so runs appending to the same log file can be told apart.
package logging
