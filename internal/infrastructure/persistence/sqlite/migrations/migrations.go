// Package migrations embeds the SQLite schema for goose.
package migrations

import "embed"

// FS holds the SQL migration files at its root.
//
//go:embed *.sql
var FS embed.FS
