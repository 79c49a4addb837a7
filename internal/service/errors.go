package service

import (
	"errors"

	"gorm.io/gorm"
)

// ==================== 错误定义 ====================

var (
	ErrNotFound   = errors.New("资源不存在")
	ErrConflict   = errors.New("资源已存在")
	ErrValidation = errors.New("参数校验失败")

	ErrProductNotFound    = errors.New("商品不存在")
	ErrCollectionNotFound = errors.New("系列不存在")
	ErrBookingNotFound    = errors.New("预约不存在")
	ErrSKUExists          = errors.New("SKU 已存在")
	ErrCollectionExists   = errors.New("系列已存在")

	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidOldPassword = errors.New("旧密码错误")
	ErrEmailExists        = errors.New("邮箱已存在")

	ErrUnsupportedFileType = errors.New("不支持的文件类型")
	ErrFileTooLarge        = errors.New("文件过大")

	ErrSessionNotFound = errors.New("页面会话不存在或已关闭")
)

// notFound 将 gorm 的 ErrRecordNotFound 映射为业务错误
func notFound(err error, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// IsNotFound 判断是否为任意"不存在"类错误
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrCollectionNotFound) ||
		errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// IsConflict 判断是否为唯一性冲突
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrSKUExists) ||
		errors.Is(err, ErrCollectionExists) ||
		errors.Is(err, ErrEmailExists)
}
