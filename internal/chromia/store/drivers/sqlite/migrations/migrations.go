// Package migrations embeds the schema migration SQL so the compiled
// binary can bring any database up to date on its own.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
