// Package migrations embeds the goose migrations of the local SQLite ledger.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
