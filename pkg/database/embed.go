package database

import "embed"

// MigrationSQL AutoMigrate 之后执行的补充 DDL（表达式索引等）
//
//go:embed migrations/*.sql
var MigrationSQL embed.FS
