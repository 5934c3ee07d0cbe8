// Package migrations embeds the SQL migrations for the PostgreSQL store.
package migrations

import "embed"

// FS holds the embedded migration files, applied with goose.
//
//go:embed *.sql
var FS embed.FS
