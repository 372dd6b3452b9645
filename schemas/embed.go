// Package schemas provides the embedded MySQL migration files.
package schemas

import "embed"

// Migrations contains all SQL migration files, applied in version order.
//
//go:embed migrations/*.sql
var Migrations embed.FS
