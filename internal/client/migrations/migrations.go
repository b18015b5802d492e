// Package migrations embeds the goose SQL migrations of the client database,
// one directory per dialect.
package migrations

import "embed"

//go:embed sqlite/*.sql
var SQLite embed.FS

//go:embed postgres/*.sql
var Postgres embed.FS
