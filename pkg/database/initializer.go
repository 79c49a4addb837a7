package database

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initializer 数据库初始化器
// 先 AutoMigrate 模型，再按文件名顺序执行补充 SQL
type Initializer struct {
	db     *gorm.DB
	models []interface{}
	sqlFS  fs.FS
	log    *zap.Logger
}

// InitOptions 初始化选项
type InitOptions struct {
	// 嵌入文件系统（默认 MigrationSQL）
	FS fs.FS

	// 外部目录（可选，用于开发调试），优先于 FS
	SQLDir string

	Models []interface{}
	Logger *zap.Logger
}

// NewInitializer 创建初始化器
func NewInitializer(db *gorm.DB, opts InitOptions) (*Initializer, error) {
	var sqlFS fs.FS
	switch {
	case opts.SQLDir != "":
		info, err := os.Stat(opts.SQLDir)
		if err != nil || !info.IsDir() {
			return nil, fmt.Errorf("SQL 目录不可用: %s", opts.SQLDir)
		}
		sqlFS = os.DirFS(opts.SQLDir)
	case opts.FS != nil:
		sqlFS = opts.FS
	default:
		sub, err := fs.Sub(MigrationSQL, "migrations")
		if err != nil {
			return nil, fmt.Errorf("加载内置迁移失败: %w", err)
		}
		sqlFS = sub
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Initializer{
		db:     db,
		models: opts.Models,
		sqlFS:  sqlFS,
		log:    log,
	}, nil
}

// Initialize 执行初始化
func (i *Initializer) Initialize(ctx context.Context) error {
	i.log.Info("开始数据库初始化")
	start := time.Now()

	// 1. AutoMigrate
	if len(i.models) > 0 {
		i.log.Info("AutoMigrate", zap.Int("models", len(i.models)))
		if err := i.db.WithContext(ctx).AutoMigrate(i.models...); err != nil {
			return fmt.Errorf("AutoMigrate 失败: %w", err)
		}
	}

	// 2. 补充 SQL
	files, err := i.MigrationFiles()
	if err != nil {
		return err
	}
	for _, name := range files {
		n, err := i.execFile(ctx, name)
		if err != nil {
			return err
		}
		i.log.Info("执行迁移脚本", zap.String("file", name), zap.Int("statements", n))
	}

	i.log.Info("数据库初始化完成", zap.Duration("elapsed", time.Since(start)))
	return nil
}

// MigrationFiles 按文件名排序的 .sql 列表
func (i *Initializer) MigrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(i.sqlFS, ".")
	if err != nil {
		return nil, fmt.Errorf("读取迁移目录失败: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func (i *Initializer) execFile(ctx context.Context, name string) (int, error) {
	data, err := fs.ReadFile(i.sqlFS, name)
	if err != nil {
		return 0, fmt.Errorf("读取 %s 失败: %w", name, err)
	}
	stmts := SplitStatements(string(data))
	for _, stmt := range stmts {
		if err := i.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return 0, fmt.Errorf("执行 %s 失败: %w", name, err)
		}
	}
	return len(stmts), nil
}

// SplitStatements 按分号拆分语句，去掉 -- 注释行
// 迁移脚本只包含简单 DDL，不处理字符串内的分号
func SplitStatements(sql string) []string {
	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	var out []string
	for _, part := range strings.Split(b.String(), ";") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// QuickInit 快速初始化
func QuickInit(db *gorm.DB, models []interface{}, log *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	init, err := NewInitializer(db, InitOptions{
		Models: models,
		Logger: log,
	})
	if err != nil {
		return err
	}
	return init.Initialize(ctx)
}
