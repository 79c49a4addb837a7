package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orient_store/internal/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := InitDB(Config{Driver: DriverSQLite, DSN: ":memory:", LogLevel: logger.Silent})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func indexNames(t *testing.T, db *gorm.DB, table string) []string {
	t.Helper()
	var names []string
	require.NoError(t, db.Raw(
		"SELECT name FROM sqlite_master WHERE type = 'index' AND tbl_name = ?", table,
	).Scan(&names).Error)
	return names
}

func TestInitDB_UnsupportedDriver(t *testing.T) {
	_, err := InitDB(Config{Driver: "mysql"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "不支持的数据库驱动")
}

func TestQuickInit_MigratesAndRunsSQL(t *testing.T) {
	db := openTestDB(t)

	core, logs := observer.New(zap.InfoLevel)
	require.NoError(t, QuickInit(db, model.AllModels(), zap.New(core)))

	for _, m := range []interface{}{&model.Product{}, &model.Collection{}, &model.Booking{}, &model.SysUser{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.Contains(t, indexNames(t, db, "products"), "idx_products_name_lower")
	assert.Contains(t, indexNames(t, db, "products"), "idx_products_views")
	assert.Contains(t, indexNames(t, db, "bookings"), "idx_bookings_date_time")

	assert.Equal(t, 2, logs.FilterMessage("执行迁移脚本").Len())
	assert.Equal(t, 1, logs.FilterMessage("数据库初始化完成").Len())

	// 重复执行不报错
	require.NoError(t, QuickInit(db, model.AllModels(), nil))
}

func TestInitializer_SQLDirOverride(t *testing.T) {
	db := openTestDB(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.sql"),
		[]byte("INSERT INTO notes (body) VALUES ('second');"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.sql"),
		[]byte("-- 建表\nCREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT);\nINSERT INTO notes (body) VALUES ('first');"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("ignored"), 0o644))

	init, err := NewInitializer(db, InitOptions{SQLDir: dir})
	require.NoError(t, err)

	files, err := init.MigrationFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.sql", "b.sql"}, files)

	require.NoError(t, init.Initialize(context.Background()))
	var bodies []string
	require.NoError(t, db.Raw("SELECT body FROM notes ORDER BY id").Scan(&bodies).Error)
	assert.Equal(t, []string{"first", "second"}, bodies)
}

func TestNewInitializer_MissingDir(t *testing.T) {
	_, err := NewInitializer(openTestDB(t), InitOptions{SQLDir: filepath.Join(t.TempDir(), "nope")})
	assert.Error(t, err)
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{"empty", "", nil},
		{"comments only", "-- a\n  -- b\n", nil},
		{"single without semicolon", "SELECT 1", []string{"SELECT 1"}},
		{"multi", "-- x\nSELECT 1;\n\nSELECT\n  2;\n", []string{"SELECT 1", "SELECT\n  2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitStatements(tt.sql))
		})
	}
}
