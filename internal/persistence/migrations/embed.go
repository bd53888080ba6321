package migrations

import "embed"

// Postgres contains the SQL migrations applied to the Postgres store.
//
//go:embed postgres/*.sql
var Postgres embed.FS

// SQLite contains the SQL migrations applied to the SQLite store.
//
//go:embed sqlite/*.sql
var SQLite embed.FS
