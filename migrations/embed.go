// Package migrations embeds the schema files for the local object store
// (sqlite/) and the remote snapshot table (postgres/).
package migrations

import "embed"

//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
