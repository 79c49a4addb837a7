package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orient_store/internal/api/dto"
)

func TestProductCtl_List(t *testing.T) {
	env := setupCtlEnv(t)
	env.seed(t)

	tests := []struct {
		name      string
		query     string
		wantCode  int
		wantNames []string
	}{
		{"默认按热度", "", http.StatusOK, []string{"Orient Bambino", "Orient Kamasu", "Orient Mako III"}},
		{"价格升序", "?sort=price-asc", http.StatusOK, []string{"Orient Bambino", "Orient Mako III", "Orient Kamasu"}},
		{"按系列", "?collection=Sports&sort=name", http.StatusOK, []string{"Orient Kamasu", "Orient Mako III"}},
		{"表盘颜色", "?dialColor=black", http.StatusOK, []string{"Orient Bambino"}},
		{"搜索", "?search=mako", http.StatusOK, []string{"Orient Mako III"}},
		{"未知排序", "?sort=cheapest", http.StatusBadRequest, nil},
		{"limit 越界", "?limit=1000", http.StatusBadRequest, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := env.do(t, http.MethodGet, "/api/products"+tt.query, nil, "")
			require.Equal(t, tt.wantCode, w.Code, w.Body.String())
			if tt.wantCode != http.StatusOK {
				assert.Equal(t, tt.wantCode, resp.Code)
				return
			}

			list := decode[[]dto.ProductResp](t, resp.Data)
			names := make([]string, 0, len(list))
			for _, p := range list {
				names = append(names, p.Name)
			}
			assert.Equal(t, tt.wantNames, names)
			require.NotNil(t, resp.Pagination)
			assert.EqualValues(t, len(tt.wantNames), resp.Pagination.Total)
		})
	}
}

func TestProductCtl_ListPagination(t *testing.T) {
	env := setupCtlEnv(t)
	env.seed(t)

	_, resp := env.do(t, http.MethodGet, "/api/products?limit=2&page=2", nil, "")
	list := decode[[]dto.ProductResp](t, resp.Data)
	assert.Len(t, list, 1)
	assert.Equal(t, dto.Pagination{Page: 2, Limit: 2, Total: 3, TotalPages: 2}, *resp.Pagination)
}

func TestProductCtl_GetAndRelated(t *testing.T) {
	env := setupCtlEnv(t)
	products := env.seed(t)
	id := products[0].PublicID()

	w, resp := env.do(t, http.MethodGet, "/api/products/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[dto.ProductResp](t, resp.Data)
	assert.Equal(t, "Orient Kamasu", p.Name)
	assert.Len(t, p.Images, 3)

	_, resp = env.do(t, http.MethodGet, "/api/products/"+id+"/related", nil, "")
	related := decode[[]dto.ProductResp](t, resp.Data)
	require.Len(t, related, 1)
	assert.Equal(t, "Orient Mako III", related[0].Name)

	w, resp = env.do(t, http.MethodGet, "/api/products/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestProductCtl_Facets(t *testing.T) {
	env := setupCtlEnv(t)
	env.seed(t)

	w, resp := env.do(t, http.MethodGet, "/api/products/facets", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	sections := decode[[]dto.FacetSection](t, resp.Data)
	require.NotEmpty(t, sections)
	var collection *dto.FacetSection
	for i := range sections {
		if sections[i].Key == "collection" {
			collection = &sections[i]
		}
	}
	require.NotNil(t, collection)
	counts := map[string]int64{}
	for _, o := range collection.Options {
		counts[o.Value] = o.Count
	}
	assert.EqualValues(t, 2, counts["Sports"])
	assert.EqualValues(t, 1, counts["Classic"])
}

func TestProductCtl_AdminRequiresToken(t *testing.T) {
	env := setupCtlEnv(t)

	w, resp := env.do(t, http.MethodPost, "/api/admin/products", gin.H{"name": "x", "collection": "Sports"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	w, _ = env.do(t, http.MethodPost, "/api/admin/products", gin.H{"name": "x", "collection": "Sports"}, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductCtl_AdminCRUD(t *testing.T) {
	env := setupCtlEnv(t)
	env.seed(t)
	token := env.adminToken(t)

	body := gin.H{
		"name":       "Orient Star Classic",
		"collection": "Classic",
		"price":      5400000,
		"sku":        "RE-AU0005L",
		"images":     []string{"star-1.jpg", "star-2.jpg"},
	}
	w, resp := env.do(t, http.MethodPost, "/api/admin/products", body, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	p := decode[dto.ProductResp](t, resp.Data)
	assert.Equal(t, "Orient Star Classic", p.Name)
	assert.True(t, p.InStock)

	// SKU 重复
	w, _ = env.do(t, http.MethodPost, "/api/admin/products", body, token)
	assert.Equal(t, http.StatusConflict, w.Code)

	// 缺少必填字段
	w, _ = env.do(t, http.MethodPost, "/api/admin/products", gin.H{"price": 1}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp = env.do(t, http.MethodPut, "/api/admin/products/"+p.ID, gin.H{"price": 4990000, "inStock": false}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dto.ProductResp](t, resp.Data)
	assert.EqualValues(t, 4990000, updated.Price)
	assert.False(t, updated.InStock)
	assert.Equal(t, "Orient Star Classic", updated.Name)

	w, _ = env.do(t, http.MethodPut, "/api/admin/products/abc", gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = env.do(t, http.MethodDelete, "/api/admin/products/"+p.ID, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = env.do(t, http.MethodGet, "/api/products/"+p.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
