// Package migrations embeds the SQL describing the bridge-compatible schema.
// It exists for test fixtures and for provisioning fresh development
// databases; production never migrates the externally-owned store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
