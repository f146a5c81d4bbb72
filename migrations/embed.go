// Package migrations embeds the SQL schema for the users and profiles tables.
package migrations

import "embed"

// PostgresFS holds the *_up.sql migrations, applied in lexical order.
//
//go:embed postgres/*.sql
var PostgresFS embed.FS

const PostgresDir = "postgres"
