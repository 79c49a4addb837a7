package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/service"
	"orient_store/internal/storefront"
)

// ==================== SessionController 商品详情页会话 ====================
// 前端把画廊、加购、轮播的交互事件转发到这里，服务端持有状态机并返回最新视图。

type SessionController struct {
	sessions *service.PageSessionService
	carts    *service.CartService
	log      *zap.Logger
}

func NewSessionController(sessions *service.PageSessionService, carts *service.CartService, log *zap.Logger) *SessionController {
	return &SessionController{sessions: sessions, carts: carts, log: namedLogger(log, "session_ctl")}
}

// session 取路径中的会话，不存在时已写入 404
func (ctrl *SessionController) session(c *gin.Context) (*service.PageSession, bool) {
	sess, err := ctrl.sessions.Get(c.Param("sid"))
	if err != nil {
		handleError(c, ctrl.log, err)
		return nil, false
	}
	return sess, true
}

// Open 打开详情页
// @Summary 打开商品详情页会话
// @Tags Session
// @Accept json
// @Param body body dto.OpenSessionReq true "商品 ID"
// @Success 201 {object} dto.PageView
// @Router /api/sessions [post]
func (ctrl *SessionController) Open(c *gin.Context) {
	var req dto.OpenSessionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, err := ctrl.sessions.Open(c.Request.Context(), req.ProductID, req.CartID)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	created(c, "success", sess.View())
}

// Get 当前视图（前端轮询 version 判断是否需要重绘）
// @Router /api/sessions/{sid} [get]
func (ctrl *SessionController) Get(c *gin.Context) {
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	success(c, sess.View())
}

// Close 页面卸载
// @Router /api/sessions/{sid} [delete]
func (ctrl *SessionController) Close(c *gin.Context) {
	if err := ctrl.sessions.Close(c.Param("sid")); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "会话已关闭"})
}

// ---------- 画廊 ----------

// SelectImage POST /api/sessions/{sid}/gallery/select
func (ctrl *SessionController) SelectImage(c *gin.Context) {
	var req dto.SelectImageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	if err := sess.SelectImage(*req.Index); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, sess.View())
}

func (ctrl *SessionController) NextImage(c *gin.Context) {
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	sess.NextImage()
	success(c, sess.View())
}

func (ctrl *SessionController) PreviousImage(c *gin.Context) {
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	sess.PreviousImage()
	success(c, sess.View())
}

// MovePointer POST /api/sessions/{sid}/gallery/pointer
func (ctrl *SessionController) MovePointer(c *gin.Context) {
	var req dto.PointerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	sess.MovePointer(req.ClientX, req.ClientY, req.Bounds)
	success(c, sess.View())
}

// SetZoom POST /api/sessions/{sid}/gallery/zoom
func (ctrl *SessionController) SetZoom(c *gin.Context) {
	var req dto.ZoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	sess.SetZoom(req.Active, req.ViewportWidth)
	success(c, sess.View())
}

func (ctrl *SessionController) PointerLeave(c *gin.Context) {
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	sess.PointerLeave()
	success(c, sess.View())
}

// ---------- 加购 ----------

// SetQuantity POST /api/sessions/{sid}/cart/quantity
// quantity 优先；未提供时按 delta (+1/-1) 增减
func (ctrl *SessionController) SetQuantity(c *gin.Context) {
	var req dto.QuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Quantity == nil && req.Delta == 0 {
		fail(c, http.StatusBadRequest, "参数错误: quantity 或 delta 必须提供一个")
		return
	}
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	if req.Quantity != nil {
		sess.SetQuantity(*req.Quantity)
	} else {
		sess.ChangeQuantity(req.Delta)
	}
	success(c, sess.View())
}

// AddToCart POST /api/sessions/{sid}/cart/add
// 动画进行中的重复点击不报错，accepted=false
func (ctrl *SessionController) AddToCart(c *gin.Context) {
	var req dto.AddToCartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	accepted := sess.AddToCart(req.Origin, req.ViewportWidth)
	success(c, gin.H{"accepted": accepted, "view": sess.View()})
}

// CartItems GET /api/sessions/{sid}/cart
func (ctrl *SessionController) CartItems(c *gin.Context) {
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	success(c, gin.H{
		"cart_id": sess.CartID,
		"items":   ctrl.carts.Items(sess.CartID),
		"count":   ctrl.carts.Count(sess.CartID),
	})
}

// ---------- 相关商品轮播 ----------

// MeasureCarousel POST /api/sessions/{sid}/carousel/measure
func (ctrl *SessionController) MeasureCarousel(c *gin.Context) {
	var req dto.CarouselMeasureReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	sess.MeasureCarousel(storefront.ScrollMetrics{
		ScrollLeft:  req.ScrollLeft,
		ScrollWidth: req.ScrollWidth,
		ClientWidth: req.ClientWidth,
	})
	success(c, sess.View())
}

// ScrollCarousel POST /api/sessions/{sid}/carousel/scroll
func (ctrl *SessionController) ScrollCarousel(c *gin.Context) {
	var req dto.CarouselScrollReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	sess, ok := ctrl.session(c)
	if !ok {
		return
	}
	target := sess.ScrollCarousel(storefront.Direction(req.Direction))
	success(c, dto.ScrollResp{Target: target, View: sess.View()})
}
