package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orient_store/pkg/database"
	"orient_store/pkg/seed"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "导入目录种子数据（按 SKU 覆盖）",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := seedFile
		if path == "" {
			path = cfg.Seed.Path
		}
		cat, err := seed.Load(path)
		if err != nil {
			return err
		}

		db, err := initDatabase(cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = database.Close(db) }()

		deps, err := initDependencies(cfg, log, db)
		if err != nil {
			return err
		}
		res, err := seedCatalog(cmd.Context(), deps, cat)
		if err != nil {
			return err
		}
		log.Info("种子数据导入完成",
			zap.Int("collections", res.Collections),
			zap.Int("products", res.Products),
			zap.Int("featured", res.Featured))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "种子文件（YAML），默认使用内置目录")
}
