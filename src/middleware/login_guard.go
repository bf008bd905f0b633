package middleware

import (
	"math"
	"net/http"
	"strconv"

	"lifelog/src/logger"
	"lifelog/src/security"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// LoginGuard rejects login requests from clients that are currently locked
// out, before the password is looked at. Remaining attempts are reported in
// the X-Attempts-Remaining header.
func LoginGuard(limiter security.AttemptLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		status, err := limiter.Status(c.Request.Context(), clientIP)
		if err != nil {
			// 判定できない場合はサービス側のチェックに任せる
			logger.WithError(err).Warn("ログイン試行状態の取得に失敗")
			c.Next()
			return
		}

		if status.Locked {
			logger.WithFields(logrus.Fields{
				"client_ip":   clientIP,
				"retry_after": status.RetryAfter.String(),
			}).Warn("ログイン試行回数の上限に達しました")
			SetRetryAfter(c, status)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "TOO_MANY_ATTEMPTS",
				"message": "too many failed attempts, try again later",
			})
			return
		}

		c.Header("X-Attempts-Remaining", strconv.Itoa(status.Remaining))
		c.Next()
	}
}

// SetRetryAfter writes the Retry-After header in whole seconds
func SetRetryAfter(c *gin.Context, status security.AttemptStatus) {
	if status.RetryAfter <= 0 {
		return
	}
	seconds := int(math.Ceil(status.RetryAfter.Seconds()))
	c.Header("Retry-After", strconv.Itoa(seconds))
}
