package controller

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orient_store/internal/task"
	"orient_store/pkg/catalogfeed"
)

func TestSync_CatalogImport(t *testing.T) {
	env := setupCtlEnv(t)
	token := env.adminToken(t)

	env.feed.watches = []catalogfeed.FeedWatch{
		{SKU: "RA-AA0003R", Name: "Orient Kamasu", Collection: "Sports", Price: 3200000, InStock: true},
		{SKU: "", Name: "без артикула"},
	}

	w, resp := env.do(t, http.MethodPost, "/api/admin/sync/catalog", nil, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	res := decode[task.FeedResult](t, resp.Data)
	assert.Equal(t, 1, res.Products)
	assert.Equal(t, 1, res.Skipped)

	// 导入后公开列表可见
	_, resp = env.do(t, http.MethodGet, "/api/products?search=kamasu", nil, "")
	require.NotNil(t, resp.Pagination)
	assert.EqualValues(t, 1, resp.Pagination.Total)

	w, resp = env.do(t, http.MethodGet, "/api/admin/sync/status", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	status := decode[map[string]task.TaskStatus](t, resp.Data)
	assert.True(t, status["catalog_feed"].Enabled)
	assert.NotNil(t, status["catalog_feed"].LastRun)
}

func TestSync_FeedFailure(t *testing.T) {
	env := setupCtlEnv(t)
	token := env.adminToken(t)
	env.feed.err = errors.New("目录数据源返回 503: unavailable")

	w, resp := env.do(t, http.MethodPost, "/api/admin/sync/catalog", nil, token)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, resp.Message, "503")
}

func TestSync_ReapSessions(t *testing.T) {
	env := setupCtlEnv(t)
	token := env.adminToken(t)

	w, resp := env.do(t, http.MethodPost, "/api/admin/sync/sessions/reap", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]int{"reaped": 0}, decode[map[string]int](t, resp.Data))

	w, _ = env.do(t, http.MethodPost, "/api/admin/sync/sessions/reap", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
