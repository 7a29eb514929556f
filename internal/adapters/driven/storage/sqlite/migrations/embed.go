// Package migrations embeds the SQL migration files for the hanci
// SQLite store.
package migrations

import "embed"

// FS holds the versioned NNN_*.up.sql / NNN_*.down.sql pairs, embedded
// at compile time.
//
//go:embed *.sql
var FS embed.FS
