// Package main hosts the moviediary CLI entrypoint and command graph.
//
// Every menu entry of the diary is its own subcommand (list, add, delete,
// update, stats, random, search, sorted, website), and "menu" runs the same
// actions as an interactive numbered loop on stdin. The command context
// resolves configuration once, opens the configured storage backend and hands
// commands a catalog.Service; commands never touch storage directly.
//
// "status" runs the readiness checks, "logs" tails the log file and
// "config" writes or validates the TOML configuration.
package main
