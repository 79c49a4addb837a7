package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/service"
)

// cacheInvalidator 商品/系列变更后清理首页缓存
type cacheInvalidator interface {
	InvalidateHome()
}

type ProductController struct {
	catalog *service.CatalogService
	home    cacheInvalidator
	log     *zap.Logger
}

func NewProductController(catalog *service.CatalogService, home cacheInvalidator, log *zap.Logger) *ProductController {
	return &ProductController{catalog: catalog, home: home, log: namedLogger(log, "product_ctl")}
}

func (ctrl *ProductController) invalidate() {
	if ctrl.home != nil {
		ctrl.home.InvalidateHome()
	}
}

// ==================== 查询接口 ====================

// List 商品列表
// @Summary 商品列表（搜索 / 筛选 / 排序 / 分页）
// @Tags Product
// @Param search query string false "名称/描述关键字"
// @Param collection query []string false "系列，可多选"
// @Param minPrice query int false "最低价"
// @Param maxPrice query int false "最高价"
// @Param sort query string false "popular | price-asc | price-desc | newest | name"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Router /api/products [get]
func (ctrl *ProductController) List(c *gin.Context) {
	var req dto.ProductListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	resp, err := ctrl.catalog.List(c.Request.Context(), req)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       0,
		"message":    "success",
		"data":       resp.Data,
		"pagination": resp.Pagination,
	})
}

// Get 商品详情
// @Summary 商品详情
// @Tags Product
// @Param id path string true "商品ID"
// @Router /api/products/{id} [get]
func (ctrl *ProductController) Get(c *gin.Context) {
	product, err := ctrl.catalog.GetByPublicID(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, dto.ToProductResp(product))
}

// Related 同系列推荐
func (ctrl *ProductController) Related(c *gin.Context) {
	ctx := c.Request.Context()
	product, err := ctrl.catalog.GetByPublicID(ctx, c.Param("id"))
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	related, err := ctrl.catalog.Related(ctx, product, service.RelatedLimit)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, dto.ToProductResps(related))
}

// Facets 筛选侧边栏分面
// @Summary 分面统计
// @Tags Product
// @Router /api/products/facets [get]
func (ctrl *ProductController) Facets(c *gin.Context) {
	sections, err := ctrl.catalog.Facets(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, sections)
}

// ==================== 后台管理 ====================

// Create 创建商品
// @Summary 创建商品
// @Tags Admin
// @Security BearerAuth
// @Param body body dto.CreateProductReq true "商品"
// @Failure 409 {object} map[string]interface{} "SKU 已存在"
// @Router /api/admin/products [post]
func (ctrl *ProductController) Create(c *gin.Context) {
	var req dto.CreateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := ctrl.catalog.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	ctrl.invalidate()
	created(c, "创建成功", dto.ToProductResp(product))
}

// Update 部分更新商品
// @Router /api/admin/products/{id} [put]
func (ctrl *ProductController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	product, err := ctrl.catalog.Update(c.Request.Context(), id, &req)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	ctrl.invalidate()
	success(c, dto.ToProductResp(product))
}

// Delete 删除商品
// @Router /api/admin/products/{id} [delete]
func (ctrl *ProductController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.catalog.Delete(c.Request.Context(), id); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	ctrl.invalidate()
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}
