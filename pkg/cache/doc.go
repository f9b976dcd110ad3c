// Package cache provides a local SQLite-backed store for search
// responses.
//
// Entries are keyed by the caller (the client derives keys from the
// request envelope and parameters) and expire after a fixed TTL.
// Expired rows are skipped on read and removed either explicitly with
// Purge or on a cron schedule with a Sweeper.
//
// The store uses the pure Go SQLite driver (modernc.org/sqlite) in WAL
// mode, so the package builds without cgo.
package cache
