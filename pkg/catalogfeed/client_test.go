package catalogfeed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/watches", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Header.Get("x-api-key") != "k-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(FeedErrorResp{Error: "unauthorized", ErrorDescription: "invalid api key"})
			return
		}
		switch r.URL.Query().Get("page") {
		case "1":
			_ = json.NewEncoder(w).Encode(FeedWatchesResp{Count: 3, Page: 1, NextPage: 2, Results: []FeedWatch{
				{SKU: "RA-AA0003R", Name: "Orient Kamasu", Collection: "Sports", Price: 3200000, InStock: true,
					Images: []string{"k1.jpg", "k2.jpg"}, DialColor: "Red",
					Specs: []FeedSpec{{Label: "Калибр", Value: "F6922"}}},
				{SKU: "", Name: "без артикула"},
			}})
		case "2":
			_ = json.NewEncoder(w).Encode(FeedWatchesResp{Count: 3, Page: 2, Results: []FeedWatch{
				{SKU: "RA-AC0M01B", Name: "Orient Bambino", Collection: "Classic", Price: 2100000},
			}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	mux.HandleFunc("/collections", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(FeedCollectionsResp{Count: 2, Results: []FeedCollection{
			{Slug: "sports", Name: "Sports", Number: "01"},
			{Slug: "", Name: "broken"},
		}})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewClient_Disabled(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrFeedDisabled)
}

func TestClient_Watches(t *testing.T) {
	srv := newFeedServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL + "/", APIKey: "k-1"})
	require.NoError(t, err)

	items, err := c.Watches(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	products := ToProducts(items)
	require.Len(t, products, 2)
	assert.Equal(t, "RA-AA0003R", products[0].SKUValue())
	assert.Equal(t, "k1.jpg", products[0].Image)
	assert.Equal(t, "red", products[0].DialColor)
	assert.Equal(t, "F6922", products[0].Specs[0].Value)
	assert.Equal(t, "Orient Bambino", products[1].Name)
}

func TestClient_ErrorResponse(t *testing.T) {
	srv := newFeedServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "wrong"})
	require.NoError(t, err)

	_, err = c.Watches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestClient_Collections(t *testing.T) {
	srv := newFeedServer(t)
	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "k-1"})
	require.NoError(t, err)

	items, err := c.Collections(context.Background())
	require.NoError(t, err)
	cols := ToCollections(items)
	require.Len(t, cols, 1)
	assert.Equal(t, "sports", cols[0].ID)
	assert.True(t, cols[0].Active)
}
