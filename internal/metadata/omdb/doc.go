// Package omdb implements metadata.Fetcher against the Open Movie Database
// HTTP API.
//
// A lookup is a single GET with the api key and the exact title. Transport
// errors and non-200 responses map to metadata.ErrUnavailable, a "Response":
// "False" payload to metadata.ErrNotFound, and a payload missing year, poster
// or a numeric IMDb rating to metadata.ErrIncomplete.
package omdb
