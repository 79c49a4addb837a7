package main

import (
	"github.com/spf13/cobra"

	"orient_store/pkg/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "建表并执行补充索引脚本",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := initDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		deps, err := initDependencies(cfg, log, db)
		if err != nil {
			return err
		}
		return ensureAdmin(cmd.Context(), deps)
	},
}
