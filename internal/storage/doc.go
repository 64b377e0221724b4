// Package storage persists the movie catalog behind one capability interface.
//
// Backend exposes list/exists/add/update/delete over an in-memory Catalog that
// is loaded completely when the backend is constructed and flushed on every
// successful mutation. Three interchangeable variants implement it:
//
//   - JSONStore keeps the catalog as one JSON object keyed by title.
//   - CSVStore keeps one title,year,rating,poster row per movie. New movies
//     are appended; updates and deletes rewrite every row.
//   - SQLiteStore keeps the rows in a single-table SQLite database and
//     rewrites the table inside one transaction per mutation.
//
// Each mutation costs O(catalog size). That suits a personal catalog; larger
// collections would want incremental persistence.
//
// A backend instance is the only owner of its catalog. List hands out clones,
// a mutex serializes calls, and an advisory lock file next to the catalog
// keeps a second process from opening the same path.
package storage
