package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"orient_store/internal/model"
)

// ==================== 测试辅助 ====================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	// :memory: 每个连接是独立数据库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("获取底层连接失败: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("数据库迁移失败: %v", err)
	}
	return db
}

func strPtr(s string) *string { return &s }
func i64Ptr(v int64) *int64    { return &v }

func seedProducts(t *testing.T, repo ProductRepository) []model.Product {
	t.Helper()
	products := []model.Product{
		{Name: "Orient Kamasu", Collection: "Sports", Price: 3200000, InStock: true, Views: 50, SKU: strPtr("RA-AA0003R"), Movement: "automatic", CaseMaterial: "steel", DialColor: "red", WaterResistance: "200m", Images: []string{"a.jpg", "b.jpg"}},
		{Name: "Orient Bambino", Collection: "Classic", Price: 2100000, InStock: true, Views: 120, SKU: strPtr("RA-AC0M01B"), Movement: "automatic", CaseMaterial: "steel", DialColor: "black", WaterResistance: "30m"},
		{Name: "Orient Star Skeleton", Collection: "Classic", Price: 7800000, InStock: false, Views: 80, SKU: strPtr("RE-AV0113B"), Movement: "mechanical", CaseMaterial: "steel", DialColor: "black", WaterResistance: "50m", Description: "Skeleton dial"},
		{Name: "Orient Mako III", Collection: "Sports", Price: 2900000, InStock: true, Views: 10, SKU: strPtr("RA-AA0008L"), Movement: "automatic", CaseMaterial: "steel", DialColor: "blue", WaterResistance: "200m"},
	}
	ctx := context.Background()
	for i := range products {
		require.NoError(t, repo.Create(ctx, &products[i]))
	}
	return products
}

// ==================== ProductRepository ====================

func TestProductRepo_ListFilters(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	seedProducts(t, repo)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    ProductFilter
		wantTotal int64
		wantFirst string
	}{
		{"全部按人气", ProductFilter{}, 4, "Orient Bambino"},
		{"按系列", ProductFilter{Collections: []string{"Sports"}}, 2, "Orient Kamasu"},
		{"关键词匹配描述", ProductFilter{Keyword: "skeleton"}, 1, "Orient Star Skeleton"},
		{"价格区间", ProductFilter{MinPrice: i64Ptr(2500000), MaxPrice: i64Ptr(3500000)}, 2, "Orient Kamasu"},
		{"价格升序", ProductFilter{Sort: SortPriceAsc}, 4, "Orient Bambino"},
		{"价格降序", ProductFilter{Sort: SortPriceDesc}, 4, "Orient Star Skeleton"},
		{"名称排序", ProductFilter{Sort: SortName}, 4, "Orient Bambino"},
		{"仅有货", ProductFilter{InStockOnly: true, Sort: SortPriceDesc}, 3, "Orient Kamasu"},
		{"机芯与表盘", ProductFilter{Movements: []string{"automatic"}, DialColors: []string{"blue", "red"}}, 2, "Orient Kamasu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)
			require.NotEmpty(t, items)
			assert.Equal(t, tt.wantFirst, items[0].Name)
		})
	}
}

func TestProductRepo_ListPagination(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	seedProducts(t, repo)

	items, total, err := repo.List(context.Background(), ProductFilter{Page: 2, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, items, 1)
	assert.Equal(t, "Orient Mako III", items[0].Name)
}

func TestProductRepo_JSONColumnsRoundTrip(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	ctx := context.Background()

	p := &model.Product{
		Name:       "Orient Star Classic",
		Collection: "Classic",
		Price:      5400000,
		InStock:    true,
		Images:     []string{"1.jpg", "2.jpg", "3.jpg"},
		Features:   []string{"Power reserve indicator"},
		Specs:      []model.SpecPair{{Label: "Калибр", Value: "F6N43"}, {Label: "Корпус", Value: "38.7mm"}},
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.jpg", "2.jpg", "3.jpg"}, []string(got.Images))
	assert.Equal(t, "F6N43", got.Specs[0].Value)
	assert.Equal(t, "Корпус", got.Specs[1].Label)
}

func TestProductRepo_DeleteMissing(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	err := repo.Delete(context.Background(), 999)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	err = repo.UpdateFields(context.Background(), 999, map[string]interface{}{"price": 1})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestProductRepo_RelatedAndFacets(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	products := seedProducts(t, repo)
	ctx := context.Background()

	related, err := repo.ListRelated(ctx, "Sports", products[0].ID, 8)
	require.NoError(t, err)
	require.Len(t, related, 1)
	assert.Equal(t, "Orient Mako III", related[0].Name)

	counts, err := repo.CountByCollection(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"Classic": 2, "Sports": 2}, counts)

	dials, err := repo.Facet(ctx, "dial_color")
	require.NoError(t, err)
	assert.Equal(t, []FacetCount{{"black", 2}, {"blue", 1}, {"red", 1}}, dials)

	_, err = repo.Facet(ctx, "price; DROP TABLE products")
	assert.Error(t, err)
}

func TestProductRepo_SKUAndUpsert(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	products := seedProducts(t, repo)
	ctx := context.Background()

	exists, err := repo.ExistsBySKU(ctx, "RA-AC0M01B", 0)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsBySKU(ctx, "RA-AC0M01B", products[1].ID)
	require.NoError(t, err)
	assert.False(t, exists, "自身 SKU 不算冲突")

	err = repo.BatchUpsert(ctx, []model.Product{
		{Name: "Orient Bambino V2", Collection: "Classic", Price: 2200000, InStock: true, SKU: strPtr("RA-AC0M01B")},
		{Name: "Orient Ray II", Collection: "Sports", Price: 2600000, InStock: true, SKU: strPtr("FAA02004D")},
	})
	require.NoError(t, err)

	got, err := repo.GetBySKU(ctx, "RA-AC0M01B")
	require.NoError(t, err)
	assert.Equal(t, "Orient Bambino V2", got.Name)
	assert.Equal(t, int64(2200000), got.Price)
	assert.Equal(t, 120, got.Views, "导入不覆盖浏览量")

	_, total, err := repo.List(ctx, ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
}

func TestProductRepo_IncrementViewsInTransaction(t *testing.T) {
	repo := NewProductRepository(setupTestDB(t))
	products := seedProducts(t, repo)
	ctx := context.Background()

	err := repo.Transaction(ctx, func(txRepo ProductRepository) error {
		return txRepo.IncrementViews(ctx, products[3].ID)
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, products[3].ID)
	require.NoError(t, err)
	assert.Equal(t, 11, got.Views)
}

// ==================== CollectionRepository ====================

func TestCollectionRepo_CRUD(t *testing.T) {
	repo := NewCollectionRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.BatchUpsert(ctx, []model.Collection{
		{ID: "sports", Name: "Sports", Number: "01", Active: true},
		{ID: "classic", Name: "Classic", Number: "02", Active: true},
		{ID: "archive", Name: "Archive", Number: "03", Active: false},
	}))

	active, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "sports", active[0].ID)

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	c, err := repo.GetByID(ctx, "classic")
	require.NoError(t, err)
	c.Active = false
	require.NoError(t, repo.Update(ctx, c))

	active, err = repo.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	byName, err := repo.GetByName(ctx, "Sports")
	require.NoError(t, err)
	assert.Equal(t, "sports", byName.ID)

	require.NoError(t, repo.Delete(ctx, "archive"))
	exists, err := repo.Exists(ctx, "archive")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.ErrorIs(t, repo.Delete(ctx, "archive"), gorm.ErrRecordNotFound)
}

// ==================== BookingRepository ====================

func TestBookingRepo_ListAndStats(t *testing.T) {
	repo := NewBookingRepository(setupTestDB(t))
	ctx := context.Background()

	for i, st := range []model.BookingStatus{model.BookingPending, model.BookingPending, model.BookingConfirmed} {
		b := &model.Booking{
			BookingNumber: "BK20250101000" + string(rune('1'+i)),
			Name:          "Test",
			Phone:         "+998901234567",
			Date:          "2025-01-31",
			Time:          "14:30",
			Status:        st,
		}
		require.NoError(t, repo.Create(ctx, b))
	}

	pending, total, err := repo.List(ctx, BookingFilter{Status: model.BookingPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, pending, 2)

	page, total, err := repo.List(ctx, BookingFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 1)

	exists, err := repo.ExistsByNumber(ctx, "BK202501010001")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repo.UpdateStatus(ctx, pending[0].ID, model.BookingCompleted))
	assert.ErrorIs(t, repo.UpdateStatus(ctx, 999, model.BookingCompleted), gorm.ErrRecordNotFound)

	stats, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats[model.BookingPending])
	assert.Equal(t, int64(1), stats[model.BookingConfirmed])
	assert.Equal(t, int64(1), stats[model.BookingCompleted])
	assert.Equal(t, int64(0), stats[model.BookingCancelled])

	require.NoError(t, repo.Delete(ctx, pending[1].ID))
	_, err = repo.GetByID(ctx, pending[1].ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

// ==================== ContentRepository ====================

func TestContentRepo_Singletons(t *testing.T) {
	repo := NewContentRepository(setupTestDB(t))
	ctx := context.Background()

	hero, err := repo.GetHero(ctx)
	require.NoError(t, err)
	assert.Nil(t, hero, "未写入时返回 nil")

	require.NoError(t, repo.SaveHero(ctx, &model.ContentHero{Title: "A", Subtitle: "B", Image: "c.jpg", CtaText: "Go", CtaLink: "/catalog"}))
	require.NoError(t, repo.SaveHero(ctx, &model.ContentHero{Title: "A2", Subtitle: "B", Image: "c.jpg", CtaText: "Go", CtaLink: "/catalog"}))

	hero, err = repo.GetHero(ctx)
	require.NoError(t, err)
	require.NotNil(t, hero)
	assert.Equal(t, int64(model.SingletonID), hero.ID)
	assert.Equal(t, "A2", hero.Title)

	require.NoError(t, repo.SavePromo(ctx, &model.ContentPromoBanner{Text: "Скидка", Code: "ORIENT10", Active: true}))
	promo, err := repo.GetPromo(ctx)
	require.NoError(t, err)
	assert.True(t, promo.Active)

	heritage, err := repo.GetHeritage(ctx)
	require.NoError(t, err)
	assert.Nil(t, heritage)
}

func TestContentRepo_ReplaceFeatured(t *testing.T) {
	db := setupTestDB(t)
	products := seedProducts(t, NewProductRepository(db))
	repo := NewContentRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceFeatured(ctx, []model.ContentFeaturedWatch{
		{ProductID: products[2].ID, OrderNum: 2},
		{ProductID: products[0].ID, OrderNum: 1, IsNew: true},
	}))
	require.NoError(t, repo.ReplaceFeatured(ctx, []model.ContentFeaturedWatch{
		{ProductID: products[1].ID, OrderNum: 2},
		{ProductID: products[3].ID, OrderNum: 1, IsNew: true},
	}))

	items, err := repo.ListFeatured(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.NotNil(t, items[0].Product)
	assert.Equal(t, "Orient Mako III", items[0].Product.Name)
	assert.True(t, items[0].IsNew)
	assert.Equal(t, "Orient Bambino", items[1].Product.Name)
}

// ==================== UserRepository ====================

func TestUserRepo_EmailLookup(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := &model.SysUser{Email: "  Admin@Orient.UZ ", PasswordHash: "x", Name: "Admin", Role: model.RoleAdmin}
	require.NoError(t, repo.Create(ctx, u))
	assert.Equal(t, "admin@orient.uz", u.Email, "写入前规范化邮箱")

	got, err := repo.GetByEmail(ctx, "ADMIN@orient.uz")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsAdmin())

	missing, err := repo.GetByEmail(ctx, "nobody@orient.uz")
	require.NoError(t, err)
	assert.Nil(t, missing)
	blank, err := repo.GetByEmail(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, blank)

	exists, err := repo.ExistsByEmail(ctx, " admin@ORIENT.uz")
	require.NoError(t, err)
	assert.True(t, exists)

	// 同一地址换大小写不能重复注册
	assert.Error(t, repo.Create(ctx, &model.SysUser{Email: "ADMIN@orient.uz", PasswordHash: "x", Name: "Dup"}))
	assert.Error(t, repo.Create(ctx, &model.SysUser{Email: " ", PasswordHash: "x", Name: "Blank"}))
}

func TestUserRepo_Updates(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	u := &model.SysUser{Email: "admin@orient.uz", PasswordHash: "x", Name: "Admin", Role: model.RoleAdmin}
	require.NoError(t, repo.Create(ctx, u))

	at := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.RecordLogin(ctx, u.ID, at))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastLoginAt)
	assert.True(t, at.Equal(*got.LastLoginAt))

	require.NoError(t, repo.UpdatePassword(ctx, u.ID, "y"))
	got, err = repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "y", got.PasswordHash)

	assert.ErrorIs(t, repo.UpdatePassword(ctx, 9999, "z"), gorm.ErrRecordNotFound)
	none, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, none)
}
