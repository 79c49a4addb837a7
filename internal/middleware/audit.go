package middleware

import (
	"context"
	"reflect"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ==================== 审计上下文 ====================

type auditContextKey struct{}

// AuditInfo 操作人信息
type AuditInfo struct {
	UserID int64
	Email  string
}

// WithAuditInfo 注入操作人到 context
func WithAuditInfo(ctx context.Context, userID int64, email string) context.Context {
	return context.WithValue(ctx, auditContextKey{}, &AuditInfo{UserID: userID, Email: email})
}

// GetAuditInfo 从 context 获取操作人
func GetAuditInfo(ctx context.Context) *AuditInfo {
	if info, ok := ctx.Value(auditContextKey{}).(*AuditInfo); ok {
		return info
	}
	return nil
}

// GetAuditUserID 从 context 获取操作人 ID，未登录返回 0
func GetAuditUserID(ctx context.Context) int64 {
	if info := GetAuditInfo(ctx); info != nil {
		return info.UserID
	}
	return 0
}

// AuditContext 将 JWT 中的用户写入 request context，供 GORM 回调使用
// 需放在 JWTAuth 之后
func AuditContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID := GetUserID(c); userID > 0 {
			ctx := WithAuditInfo(c.Request.Context(), userID, GetUserEmail(c))
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

// ==================== GORM 回调 ====================

// RegisterAuditCallbacks 注册审计回调
// 带 CreatedBy/UpdatedBy 字段的模型（商品）在后台写入时自动记录操作人
func RegisterAuditCallbacks(db *gorm.DB) error {
	err := db.Callback().Create().Before("gorm:create").Register("audit:create", func(tx *gorm.DB) {
		userID := auditUserID(tx)
		if userID == 0 {
			return
		}
		fillZeroField(tx, "CreatedBy", userID)
		fillZeroField(tx, "UpdatedBy", userID)
	})
	if err != nil {
		return err
	}

	return db.Callback().Update().Before("gorm:update").Register("audit:update", func(tx *gorm.DB) {
		userID := auditUserID(tx)
		if userID == 0 || tx.Statement.Schema == nil {
			return
		}
		if tx.Statement.Schema.LookUpField("UpdatedBy") != nil {
			tx.Statement.SetColumn("UpdatedBy", userID)
		}
	})
}

func auditUserID(tx *gorm.DB) int64 {
	if tx.Statement.Context == nil {
		return 0
	}
	return GetAuditUserID(tx.Statement.Context)
}

// fillZeroField 仅在字段为零值时写入，支持单条与批量
func fillZeroField(tx *gorm.DB, fieldName string, value int64) {
	if tx.Statement.Schema == nil {
		return
	}
	field := tx.Statement.Schema.LookUpField(fieldName)
	if field == nil {
		return
	}

	ctx := tx.Statement.Context
	rv := tx.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Struct:
		if _, isZero := field.ValueOf(ctx, rv); isZero {
			_ = field.Set(ctx, rv, value)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			elem := reflect.Indirect(rv.Index(i))
			if _, isZero := field.ValueOf(ctx, elem); isZero {
				_ = field.Set(ctx, elem, value)
			}
		}
	}
}
