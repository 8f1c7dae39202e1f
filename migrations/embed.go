// Package migrations embeds the SQL schema applied at API start.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
