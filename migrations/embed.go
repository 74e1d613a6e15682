// Package migrations holds the schema of the calendar store, one directory
// per SQL dialect.
package migrations

import "embed"

// FS contains sqlite/*.sql and postgres/*.sql.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
