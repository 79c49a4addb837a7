package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/service"
)

// ContentController 首页内容（前台读取 + 后台编辑）
type ContentController struct {
	content *service.ContentService
	log     *zap.Logger
}

func NewContentController(content *service.ContentService, log *zap.Logger) *ContentController {
	return &ContentController{content: content, log: namedLogger(log, "content_ctl")}
}

// Home 首页聚合：hero + promo + featured + collections + heritage
// @Router /api/content/home [get]
func (ctrl *ContentController) Home(c *gin.Context) {
	page, err := ctrl.content.Home(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, page)
}

func (ctrl *ContentController) Hero(c *gin.Context) {
	hero, err := ctrl.content.Hero(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, hero)
}

func (ctrl *ContentController) Promo(c *gin.Context) {
	promo, err := ctrl.content.Promo(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, promo)
}

func (ctrl *ContentController) Heritage(c *gin.Context) {
	h, err := ctrl.content.Heritage(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, h)
}

func (ctrl *ContentController) Featured(c *gin.Context) {
	list, err := ctrl.content.Featured(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, list)
}

// ==================== 后台编辑 ====================

// UpdateHero PUT /api/admin/content/hero
func (ctrl *ContentController) UpdateHero(c *gin.Context) {
	var req dto.HeroContent
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.content.UpdateHero(c.Request.Context(), &req); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "保存成功", "data": req})
}

// UpdatePromo PUT /api/admin/content/promo
func (ctrl *ContentController) UpdatePromo(c *gin.Context) {
	var req dto.PromoBanner
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.content.UpdatePromo(c.Request.Context(), &req); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "保存成功", "data": req})
}

// UpdateHeritage PUT /api/admin/content/heritage
func (ctrl *ContentController) UpdateHeritage(c *gin.Context) {
	var req dto.HeritageSection
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := ctrl.content.UpdateHeritage(c.Request.Context(), &req); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "保存成功", "data": req})
}

// SetFeatured PUT /api/admin/content/featured
// 请求体为数组，整体替换推荐位；引用不存在的商品返回 400
func (ctrl *ContentController) SetFeatured(c *gin.Context) {
	var req []dto.FeaturedWatchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.content.SetFeatured(ctx, req); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		handleError(c, ctrl.log, err)
		return
	}

	list, err := ctrl.content.Featured(ctx)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "保存成功", "data": list})
}
