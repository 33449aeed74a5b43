// Package migrations embeds the SQL schema files into the binary.
//
// Importing this package for side effects registers the files with the
// database package:
//
//	import _ "github.com/nerrad567/cuepad-core/migrations"
package migrations

import (
	"embed"

	"github.com/nerrad567/cuepad-core/internal/infrastructure/database"
)

//go:embed *.sql
var migrationsFS embed.FS

func init() {
	database.MigrationsFS = migrationsFS
	database.MigrationsDir = "."
}
