// Package fuzzy finds catalog titles that are within a small edit distance of
// a query.
//
// Distance is plain Levenshtein over runes with unit costs for insertion,
// deletion and substitution. A Matcher scans every title a Lister exposes and
// keeps those within its threshold, folding case unless configured otherwise.
package fuzzy
