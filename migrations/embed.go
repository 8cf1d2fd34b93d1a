// Package migrations embeds the goose migrations that mirror the
// contact-center reporting schema for local development.
package migrations

import "embed"

// FS holds the SQL migration files.
//
//go:embed *.sql
var FS embed.FS
