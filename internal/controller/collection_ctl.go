package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/service"
)

type CollectionController struct {
	collections *service.CollectionService
	home        cacheInvalidator
	log         *zap.Logger
}

func NewCollectionController(collections *service.CollectionService, home cacheInvalidator, log *zap.Logger) *CollectionController {
	return &CollectionController{collections: collections, home: home, log: namedLogger(log, "collection_ctl")}
}

func (ctrl *CollectionController) invalidate() {
	if ctrl.home != nil {
		ctrl.home.InvalidateHome()
	}
}

// List 启用的系列（含 watchCount）
// @Router /api/collections [get]
func (ctrl *CollectionController) List(c *gin.Context) {
	list, err := ctrl.collections.ListActive(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, list)
}

// Get 系列详情
// @Router /api/collections/{id} [get]
func (ctrl *CollectionController) Get(c *gin.Context) {
	col, err := ctrl.collections.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, col)
}

// Products 系列下的商品
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(50)
// @Router /api/collections/{id}/products [get]
func (ctrl *CollectionController) Products(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(service.CollectionProductsPageSize)))

	resp, err := ctrl.collections.Products(c.Request.Context(), c.Param("id"), page, limit)
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

// ==================== 后台管理 ====================

// Create 创建系列，ID 重复返回 409
// @Router /api/admin/collections [post]
func (ctrl *CollectionController) Create(c *gin.Context) {
	var req dto.CreateCollectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	col, err := ctrl.collections.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	ctrl.invalidate()
	created(c, "创建成功", dto.ToCollectionResp(col, 0))
}

// @Router /api/admin/collections/{id} [put]
func (ctrl *CollectionController) Update(c *gin.Context) {
	var req dto.UpdateCollectionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if _, err := ctrl.collections.Update(ctx, c.Param("id"), &req); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	ctrl.invalidate()

	col, err := ctrl.collections.Get(ctx, c.Param("id"))
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, col)
}

// @Router /api/admin/collections/{id} [delete]
func (ctrl *CollectionController) Delete(c *gin.Context) {
	if err := ctrl.collections.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	ctrl.invalidate()
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}
