// Package preflight provides readiness checks for the filesystem paths and
// external services moviediary depends on.
//
// The CLI "moviediary status" command runs RunAll and prints one line per
// Result. Checks for optional features (OMDb lookups, custom website
// templates) only run when the feature is configured.
package preflight
