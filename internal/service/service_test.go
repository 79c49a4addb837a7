package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orient_store/internal/api/dto"
	"orient_store/internal/model"
	"orient_store/internal/repository"
)

// ==================== 测试辅助 ====================

type testEnv struct {
	db          *gorm.DB
	products    repository.ProductRepository
	collections repository.CollectionRepository
	content     repository.ContentRepository
	bookings    repository.BookingRepository
	users       repository.UserRepository
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}

	return &testEnv{
		db:          db,
		products:    repository.NewProductRepository(db),
		collections: repository.NewCollectionRepository(db),
		content:     repository.NewContentRepository(db),
		bookings:    repository.NewBookingRepository(db),
		users:       repository.NewUserRepository(db),
	}
}

func boolPtr(v bool) *bool    { return &v }
func intPtr(v int) *int       { return &v }
func i64Ptr(v int64) *int64   { return &v }
func strPtr(s string) *string { return &s }

// seedCatalog 两个系列、五块表
func seedCatalog(t *testing.T, env *testEnv) []model.Product {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, env.collections.Create(ctx, &model.Collection{ID: "sports", Name: "Sports", Number: "01", Active: true}))
	require.NoError(t, env.collections.Create(ctx, &model.Collection{ID: "classic", Name: "Classic", Number: "02", Active: true}))
	require.NoError(t, env.collections.Create(ctx, &model.Collection{ID: "archive", Name: "Archive", Number: "09", Active: false}))

	products := []model.Product{
		{Name: "Orient Kamasu", Collection: "Sports", Price: 3200000, InStock: true, Views: 50, SKU: strPtr("RA-AA0003R"),
			Movement: "automatic", CaseMaterial: "steel", DialColor: "red", WaterResistance: "200m",
			Image: "kamasu-1.jpg", Images: []string{"kamasu-1.jpg", "kamasu-2.jpg", "kamasu-3.jpg"}},
		{Name: "Orient Mako III", Collection: "Sports", Price: 2900000, InStock: true, Views: 10, SKU: strPtr("RA-AA0008L"),
			Movement: "automatic", CaseMaterial: "steel", DialColor: "blue", WaterResistance: "200m"},
		{Name: "Orient Ray II", Collection: "Sports", Price: 2700000, InStock: true, Views: 5, SKU: strPtr("FAA02005D9"),
			Movement: "automatic", CaseMaterial: "steel", DialColor: "black", WaterResistance: "200m"},
		{Name: "Orient Bambino", Collection: "Classic", Price: 2100000, InStock: true, Views: 120, SKU: strPtr("RA-AC0M01B"),
			Movement: "automatic", CaseMaterial: "steel", DialColor: "black", WaterResistance: "30m"},
		{Name: "Orient Star Skeleton", Collection: "Classic", Price: 7800000, InStock: false, Views: 80, SKU: strPtr("RE-AV0113B"),
			Movement: "mechanical", CaseMaterial: "gold", DialColor: "black", WaterResistance: "50m"},
	}
	for i := range products {
		require.NoError(t, env.products.Create(ctx, &products[i]))
	}
	return products
}

func newCatalog(env *testEnv) *CatalogService {
	return NewCatalogService(env.products, nil)
}

func newCollections(env *testEnv) *CollectionService {
	return NewCollectionService(env.collections, env.products, nil)
}

func sampleBooking() *dto.CreateBookingReq {
	return &dto.CreateBookingReq{
		Name:  "Алишер",
		Phone: "+998901234567",
		Date:  "2025-03-01",
		Time:  "14:30",
	}
}
