// Package catalog is the single entry point the command line uses to work
// with the movie collection.
//
// Service forwards persistence to a storage.Backend, runs fuzzy title search
// through a fuzzy.Matcher, and derives the read-only views (ranking by rating,
// statistics, a random pick). Import adds a movie from a metadata.Fetcher.
package catalog
