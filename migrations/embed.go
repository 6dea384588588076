// Package migrations holds the versioned postgres schema.
package migrations

import "embed"

// Files contains NNNN_name.sql migrations and their NNNN_name_rollback.sql pairs.
//
//go:embed *.sql
var Files embed.FS
