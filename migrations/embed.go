// Package migrations embeds the goose SQL migrations for the language store.
package migrations

import "embed"

// FS contains the embedded PostgreSQL migrations.
//
//go:embed *.sql
var FS embed.FS
