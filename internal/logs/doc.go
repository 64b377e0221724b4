// Package logs reads the moviediary log file for the "moviediary logs"
// command.
//
// Tail returns the last lines of the file with bounded memory, and Follow
// polls for lines appended after a byte offset until its context ends.
package logs
