package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// ==================== 提交限流中间件 ====================

// SubmitRateLimit 按客户端 IP + 提交类型限流
//
// 使用示例:
//
//	bookings.POST("",
//	    middleware.SubmitRateLimit(limiter, middleware.ScopeBooking, 0),
//	    bookingCtrl.Create,
//	)
//
// interval 为 0 时使用 DefaultIntervals 中的值
func SubmitRateLimit(limiter *CooldownLimiter, scope SubmitScope, interval time.Duration) gin.HandlerFunc {
	if interval == 0 {
		interval = GetInterval(scope)
	}

	return func(c *gin.Context) {
		key := ClientKey(scope, c.ClientIP())

		result := limiter.Check(key, interval)
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Round(time.Second).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": formatRetryMessage(result.RetryAfter),
				"data": gin.H{
					"retry_after": retryAfter,
					"scope":       scope,
				},
			})
			return
		}

		c.Next()
	}
}

// formatRetryMessage 格式化重试提示信息
func formatRetryMessage(d time.Duration) string {
	seconds := int(d.Round(time.Second).Seconds())
	if seconds < 1 {
		seconds = 1
	}

	if seconds < 60 {
		return fmt.Sprintf("提交过于频繁，请 %d 秒后重试", seconds)
	}

	minutes := seconds / 60
	remainingSeconds := seconds % 60
	if remainingSeconds == 0 {
		return fmt.Sprintf("提交过于频繁，请 %d 分钟后重试", minutes)
	}
	return fmt.Sprintf("提交过于频繁，请 %d 分 %d 秒后重试", minutes, remainingSeconds)
}
