package migrations

import "embed"

// Migrations holds the numbered golang-migrate SQL files.
//
//go:embed *.sql
var Migrations embed.FS
