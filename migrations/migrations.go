package migrations

import "embed"

//go:embed main/*.sql
var Main embed.FS

//go:embed stats/*.sql
var Stats embed.FS
