package controller

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orient_store/internal/storefront"
)

// sessionView 详情页视图（阶段按字符串解码）
type sessionView struct {
	SessionID string                  `json:"session_id"`
	Version   uint64                  `json:"version"`
	Gallery   storefront.GalleryState `json:"gallery"`
	AddToCart struct {
		Phase        string               `json:"phase"`
		Quantity     int                  `json:"quantity"`
		ToastVisible bool                 `json:"toast_visible"`
		ToastText    string               `json:"toast_text"`
		Flying       storefront.FlyingCue `json:"flying"`
	} `json:"add_to_cart"`
	Carousel  storefront.CarouselState `json:"carousel"`
	CartCount int                      `json:"cart_count"`
}

func (env *ctlEnv) openSession(t *testing.T, productID string) sessionView {
	t.Helper()
	w, resp := env.do(t, http.MethodPost, "/api/sessions", gin.H{"product_id": productID}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[sessionView](t, resp.Data)
}

func (env *ctlEnv) sessionCall(t *testing.T, method, path string, body any) (int, sessionView) {
	t.Helper()
	w, resp := env.do(t, method, path, body, "")
	var v sessionView
	if w.Code == http.StatusOK && len(resp.Data) > 0 {
		v = decode[sessionView](t, resp.Data)
	}
	return w.Code, v
}

func TestSessionCtl_OpenAndClose(t *testing.T) {
	env := setupCtlEnv(t)
	products := env.seed(t)

	view := env.openSession(t, products[0].PublicID())
	assert.NotEmpty(t, view.SessionID)
	assert.False(t, view.Gallery.Empty)
	assert.Equal(t, "kamasu-1.jpg", view.Gallery.SelectedImage)
	assert.Equal(t, "idle", view.AddToCart.Phase)
	assert.Equal(t, 1, view.AddToCart.Quantity)
	assert.Equal(t, 1, view.Carousel.Items)
	assert.Equal(t, 1, env.sessions.Count())

	base := "/api/sessions/" + view.SessionID
	code, _ := env.sessionCall(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = env.sessionCall(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = env.sessionCall(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, code)
	code, _ = env.sessionCall(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNotFound, code)

	w, _ := env.do(t, http.MethodPost, "/api/sessions", gin.H{"product_id": "9999"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w, _ = env.do(t, http.MethodPost, "/api/sessions", gin.H{}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionCtl_EmptyGallery(t *testing.T) {
	env := setupCtlEnv(t)
	products := env.seed(t)

	view := env.openSession(t, products[1].PublicID())
	assert.True(t, view.Gallery.Empty)
	assert.Empty(t, view.Gallery.SelectedImage)

	base := "/api/sessions/" + view.SessionID
	code, view := env.sessionCall(t, http.MethodPost, base+"/gallery/next", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, view.Gallery.SelectedIndex)

	code, view = env.sessionCall(t, http.MethodPost, base+"/gallery/zoom", gin.H{"active": true, "viewport_width": 1440})
	require.Equal(t, http.StatusOK, code)
	assert.False(t, view.Gallery.ZoomActive)
}

func TestSessionCtl_Gallery(t *testing.T) {
	env := setupCtlEnv(t)
	products := env.seed(t)
	base := "/api/sessions/" + env.openSession(t, products[0].PublicID()).SessionID

	code, view := env.sessionCall(t, http.MethodPost, base+"/gallery/select", gin.H{"index": 2})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "kamasu-3.jpg", view.Gallery.SelectedImage)

	// 越界
	code, _ = env.sessionCall(t, http.MethodPost, base+"/gallery/select", gin.H{"index": 3})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = env.sessionCall(t, http.MethodPost, base+"/gallery/select", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)

	// 末尾回绕
	_, view = env.sessionCall(t, http.MethodPost, base+"/gallery/next", nil)
	assert.Equal(t, 0, view.Gallery.SelectedIndex)
	_, view = env.sessionCall(t, http.MethodPost, base+"/gallery/prev", nil)
	assert.Equal(t, 2, view.Gallery.SelectedIndex)

	// 窄屏不开放大镜
	_, view = env.sessionCall(t, http.MethodPost, base+"/gallery/zoom", gin.H{"active": true, "viewport_width": 800})
	assert.False(t, view.Gallery.ZoomActive)

	_, view = env.sessionCall(t, http.MethodPost, base+"/gallery/zoom", gin.H{"active": true, "viewport_width": 1280})
	assert.True(t, view.Gallery.ZoomActive)

	bounds := storefront.Rect{Left: 100, Top: 50, Width: 400, Height: 400}
	_, view = env.sessionCall(t, http.MethodPost, base+"/gallery/pointer",
		gin.H{"client_x": 200, "client_y": 450, "bounds": bounds})
	assert.Equal(t, storefront.Point{X: 0.25, Y: 1}, view.Gallery.PointerFraction)
	assert.Equal(t, storefront.Point{X: 25, Y: 100}, view.Gallery.BackgroundPosition)

	_, view = env.sessionCall(t, http.MethodPost, base+"/gallery/leave", nil)
	assert.False(t, view.Gallery.ZoomActive)
	assert.Equal(t, storefront.Point{}, view.Gallery.PointerFraction)
}

func TestSessionCtl_AddToCartTimeline(t *testing.T) {
	env := setupCtlEnv(t)
	products := env.seed(t)
	opened := env.openSession(t, products[0].PublicID())
	base := "/api/sessions/" + opened.SessionID

	code, view := env.sessionCall(t, http.MethodPost, base+"/cart/quantity", gin.H{"quantity": 2})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 2, view.AddToCart.Quantity)

	_, view = env.sessionCall(t, http.MethodPost, base+"/cart/quantity", gin.H{"delta": 1})
	assert.Equal(t, 3, view.AddToCart.Quantity)
	_, view = env.sessionCall(t, http.MethodPost, base+"/cart/quantity", gin.H{"quantity": 0})
	assert.Equal(t, 1, view.AddToCart.Quantity)
	_, view = env.sessionCall(t, http.MethodPost, base+"/cart/quantity", gin.H{"quantity": 3})
	assert.Equal(t, 3, view.AddToCart.Quantity)

	code, _ = env.sessionCall(t, http.MethodPost, base+"/cart/quantity", gin.H{})
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = env.sessionCall(t, http.MethodPost, base+"/cart/quantity", gin.H{"delta": 5})
	assert.Equal(t, http.StatusBadRequest, code)

	click := gin.H{"origin": storefront.Rect{Left: 100, Top: 600, Width: 200, Height: 48}, "viewport_width": 1280}
	w, resp := env.do(t, http.MethodPost, base+"/cart/add", click, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var added struct {
		Accepted bool        `json:"accepted"`
		View     sessionView `json:"view"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &added))
	assert.True(t, added.Accepted)
	assert.Equal(t, "in_flight", added.View.AddToCart.Phase)
	assert.Equal(t, 3, added.View.CartCount)

	// 动画中：重复点击被忽略，数量不可修改
	_, resp = env.do(t, http.MethodPost, base+"/cart/add", click, "")
	require.NoError(t, json.Unmarshal(resp.Data, &added))
	assert.False(t, added.Accepted)
	_, view = env.sessionCall(t, http.MethodPost, base+"/cart/quantity", gin.H{"quantity": 5})
	assert.Equal(t, 3, view.AddToCart.Quantity)

	env.sched.Advance(800 * time.Millisecond)
	_, view = env.sessionCall(t, http.MethodGet, base, nil)
	assert.Equal(t, "success", view.AddToCart.Phase)
	assert.True(t, view.AddToCart.ToastVisible)
	assert.False(t, view.AddToCart.Flying.Visible)

	env.sched.AdvanceTo(2500 * time.Millisecond)
	_, view = env.sessionCall(t, http.MethodGet, base, nil)
	assert.Equal(t, "idle", view.AddToCart.Phase)
	assert.True(t, view.AddToCart.ToastVisible)

	env.sched.AdvanceTo(3500 * time.Millisecond)
	_, view = env.sessionCall(t, http.MethodGet, base, nil)
	assert.False(t, view.AddToCart.ToastVisible)
	assert.Zero(t, env.sched.Pending())

	w, resp = env.do(t, http.MethodGet, base+"/cart", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var cart struct {
		CartID string `json:"cart_id"`
		Count  int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &cart))
	assert.Equal(t, opened.SessionID, cart.CartID)
	assert.Equal(t, 3, cart.Count)
}

func TestSessionCtl_CloseCancelsTimers(t *testing.T) {
	env := setupCtlEnv(t)
	products := env.seed(t)
	base := "/api/sessions/" + env.openSession(t, products[0].PublicID()).SessionID

	env.sessionCall(t, http.MethodPost, base+"/cart/add", gin.H{"viewport_width": 1280})
	require.NotZero(t, env.sched.Pending())

	code, _ := env.sessionCall(t, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Zero(t, env.sched.Pending())
}

func TestSessionCtl_Carousel(t *testing.T) {
	env := setupCtlEnv(t)
	products := env.seed(t)
	base := "/api/sessions/" + env.openSession(t, products[0].PublicID()).SessionID

	code, view := env.sessionCall(t, http.MethodPost, base+"/carousel/measure",
		gin.H{"scroll_left": 0, "scroll_width": 1000, "client_width": 400})
	require.Equal(t, http.StatusOK, code)
	assert.False(t, view.Carousel.CanScrollLeft)
	assert.True(t, view.Carousel.CanScrollRight)

	w, resp := env.do(t, http.MethodPost, base+"/carousel/scroll", gin.H{"direction": "right"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var scrolled struct {
		Target float64     `json:"target"`
		View   sessionView `json:"view"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &scrolled))
	assert.InDelta(t, 340, scrolled.Target, 0.001)
	assert.False(t, scrolled.View.Carousel.CanScrollLeft)

	before := scrolled.View.Version
	env.sched.Advance(storefront.ScrollSettleDelay)
	_, view = env.sessionCall(t, http.MethodGet, base, nil)
	assert.True(t, view.Carousel.CanScrollLeft)
	assert.True(t, view.Carousel.CanScrollRight)
	assert.Greater(t, view.Version, before)

	code, _ = env.sessionCall(t, http.MethodPost, base+"/carousel/scroll", gin.H{"direction": "up"})
	assert.Equal(t, http.StatusBadRequest, code)
}
