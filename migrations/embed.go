// Package migrations holds the versioned SQL applied by internal/database/migration.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
