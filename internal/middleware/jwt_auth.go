package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ==================== JWT 配置 ====================

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey      string        // 签名密钥
	AccessTokenTTL time.Duration // Access Token 有效期
	Issuer         string        // 签发者
}

// DefaultJWTConfig 默认配置，生产环境必须通过配置覆盖密钥
func DefaultJWTConfig() *JWTConfig {
	return &JWTConfig{
		SecretKey:      "orient-store-secret-key-change-in-production",
		AccessTokenTTL: 12 * time.Hour,
		Issuer:         "orient-store",
	}
}

var jwtConfig = DefaultJWTConfig()

// SetJWTConfig 设置 JWT 配置，空字段保留默认值
func SetJWTConfig(cfg *JWTConfig) {
	def := DefaultJWTConfig()
	if cfg.SecretKey == "" {
		cfg.SecretKey = def.SecretKey
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = def.AccessTokenTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = def.Issuer
	}
	jwtConfig = cfg
}

// GetJWTConfig 获取 JWT 配置
func GetJWTConfig() *JWTConfig {
	return jwtConfig
}

// ==================== Claims 定义 ====================

// UserClaims 后台用户声明
type UserClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

const tokenSubjectAccess = "access"

// GenerateAccessToken 生成 Access Token
func GenerateAccessToken(userID int64, email, role string) (string, error) {
	now := time.Now()
	claims := &UserClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtConfig.Issuer,
			Subject:   tokenSubjectAccess,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtConfig.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtConfig.SecretKey))
}

// ParseToken 解析并校验 Token（签名、过期、签发者）
func ParseToken(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(jwtConfig.SecretKey), nil
	}, jwt.WithIssuer(jwtConfig.Issuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*UserClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
)

func abortJSON(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// JWTAuth JWT 认证中间件
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortJSON(c, http.StatusUnauthorized, "未提供认证信息")
			return
		}

		// 解析 Bearer Token
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortJSON(c, http.StatusUnauthorized, "认证格式错误，应为 Bearer {token}")
			return
		}

		claims, err := ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "Token 无效或已过期")
			return
		}
		if claims.Subject != tokenSubjectAccess {
			abortJSON(c, http.StatusUnauthorized, "Token 类型错误")
			return
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, claims.Role)

		c.Next()
	}
}

// RequireRole 角色权限校验，需放在 JWTAuth 之后
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := GetUserRole(c)
		if userRole == "" {
			abortJSON(c, http.StatusUnauthorized, "未获取到用户角色")
			return
		}

		for _, r := range roles {
			if userRole == r {
				c.Next()
				return
			}
		}
		abortJSON(c, http.StatusForbidden, "无权限访问")
	}
}

// ==================== 辅助函数 ====================

// GetUserID 从 Context 获取用户 ID
func GetUserID(c *gin.Context) int64 {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if v, ok := id.(int64); ok {
			return v
		}
	}
	return 0
}

// GetUserEmail 从 Context 获取用户邮箱
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ContextKeyEmail)
}

// GetUserRole 从 Context 获取用户角色
func GetUserRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}
