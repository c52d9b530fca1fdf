// Package migrations embeds the PostgreSQL schema for goose.
package migrations

import "embed"

// FS holds the SQL migration files at its root.
//
//go:embed *.sql
var FS embed.FS
