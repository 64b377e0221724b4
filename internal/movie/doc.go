// Package movie defines the record shape shared by every catalog component.
//
// A Movie is one title with its display year, rating, and poster reference.
// A Catalog is the full set of movies for one storage instance, keyed by
// title and enumerated in insertion order. Storage backends own the live
// Catalog; everything else works on clones.
package movie
