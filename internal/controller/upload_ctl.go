package controller

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"orient_store/internal/service"
)

// UploadController 后台图片上传
type UploadController struct {
	uploads *service.UploadService
	log     *zap.Logger
}

func NewUploadController(uploads *service.UploadService, log *zap.Logger) *UploadController {
	return &UploadController{uploads: uploads, log: namedLogger(log, "upload_ctl")}
}

// Upload 上传单张图片，表单字段 file
// @Summary 上传图片
// @Tags Admin
// @Accept multipart/form-data
// @Param file formData file true "jpg / jpeg / png / webp，最大 5MB"
// @Success 200 {object} dto.UploadResp
// @Failure 400 {object} map[string]interface{} "文件类型不支持"
// @Failure 413 {object} map[string]interface{} "文件过大"
// @Router /api/admin/upload [post]
func (ctrl *UploadController) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		fail(c, http.StatusBadRequest, "缺少上传文件 file")
		return
	}

	// 先按文件头校验，避免读取超大文件
	if _, err := ctrl.uploads.CheckFile(fh.Filename, fh.Size); err != nil {
		handleError(c, ctrl.log, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, service.MaxUploadSize+1))
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}

	// 浏览器未识别类型时按内容嗅探
	contentType := fh.Header.Get("Content-Type")
	if contentType == "application/octet-stream" {
		contentType = ""
	}

	resp, err := ctrl.uploads.Upload(c.Request.Context(), fh.Filename, contentType, data)
	if err != nil {
		handleError(c, ctrl.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "上传成功", "data": resp})
}
