package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/api/dto"
	"orient_store/internal/service"
)

// ==================== BookingController 精品店预约 ====================

type BookingController struct {
	bookings *service.BookingService
	log      *zap.Logger
}

func NewBookingController(bookings *service.BookingService, log *zap.Logger) *BookingController {
	return &BookingController{bookings: bookings, log: namedLogger(log, "booking_ctl")}
}

// Create 前台提交预约
// @Summary 提交到店预约
// @Tags Booking
// @Accept json
// @Param body body dto.CreateBookingReq true "预约信息"
// @Success 201 {object} dto.BookingResp
// @Failure 429 {object} map[string]interface{} "提交过于频繁"
// @Router /api/bookings [post]
func (ctrl *BookingController) Create(c *gin.Context) {
	var req dto.CreateBookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := ctrl.bookings.Create(c.Request.Context(), &req)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	created(c, "预约已提交", dto.ToBookingResp(b))
}

// List 后台预约列表
// @Param skip query int false "跳过条数"
// @Param limit query int false "返回条数" default(50)
// @Param status query string false "pending | confirmed | completed | cancelled"
// @Router /api/admin/bookings [get]
func (ctrl *BookingController) List(c *gin.Context) {
	var req dto.BookingListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		badRequest(c, err)
		return
	}

	list, total, err := ctrl.bookings.List(c.Request.Context(), req)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": "success",
		"data":    list,
		"total":   total,
	})
}

func (ctrl *BookingController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := ctrl.bookings.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, dto.ToBookingResp(b))
}

// UpdateStatus 修改预约状态
// @Router /api/admin/bookings/{id}/status [patch]
func (ctrl *BookingController) UpdateStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateBookingStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := ctrl.bookings.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, dto.ToBookingResp(b))
}

func (ctrl *BookingController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.bookings.Delete(c.Request.Context(), id); err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "删除成功"})
}

// Stats 按状态统计
// @Router /api/admin/bookings/stats [get]
func (ctrl *BookingController) Stats(c *gin.Context) {
	stats, err := ctrl.bookings.Stats(c.Request.Context())
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	success(c, stats)
}
