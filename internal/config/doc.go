// Package config loads, normalizes, and validates moviediary configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads an optional .env file from the working
// directory, and honours environment fallbacks such as OMDB_API_KEY. The Config
// type centralizes every knob the CLI needs: where the catalog lives and in
// which format, how fuzzy search matches, how metadata is fetched, where the
// website is written, and how logs are emitted.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, a resolved storage format, and clear validation errors.
package config
