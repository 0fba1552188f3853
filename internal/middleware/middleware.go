package middleware

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/diegoizac/christianitatis-sub000/internal/helpers"
	"github.com/diegoizac/christianitatis-sub000/internal/services"
)

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", method,
			"path", path,
			"status", statusCode,
			"latency", latency,
			"client_ip", clientIP,
		)
	}
}

// ErrorHandler provides centralized error handling
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last()
			requestID, _ := c.Get("request_id")

			logger.Error("Request error",
				"request_id", requestID,
				"error", err.Error(),
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
			)

			// Don't return error details in production
			c.JSON(500, gin.H{
				"error":      "Internal server error",
				"request_id": requestID,
			})
		}
	}
}

// AuthMiddleware validates the session cookie against Supabase JWKS,
// refreshing it when possible, then loads the caller's profile row so
// handlers can gate on role.
func AuthMiddleware(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized access",
				"error":   "JWT token not found in cookie",
			})
			c.Abort()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err != nil {
			refreshToken, refreshErr := c.Cookie("refresh_token")
			if refreshErr != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   err.Error(),
				})
				c.Abort()
				return
			}

			tokenRes, refreshErr := userService.RefreshToken(c.Request.Context(), refreshToken)
			if refreshErr != nil || tokenRes == nil || tokenRes.AccessToken == "" {
				logger.Error("Token refresh failed", "error", refreshErr)
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Token expired and refresh failed",
				})
				c.Abort()
				return
			}

			logger.Info("Token refreshed successfully",
				"user_id", tokenRes.User.ID,
				"expires_in", tokenRes.ExpiresIn,
			)

			isProduction := os.Getenv("GIN_MODE") == "production"
			c.SetCookie("access_token", tokenRes.AccessToken, tokenRes.ExpiresIn, "/", "", isProduction, true)
			c.SetCookie("refresh_token", tokenRes.RefreshToken, 3600*24*30, "/", "", isProduction, true)

			token = tokenRes.AccessToken
			claims, err = helpers.ValidateToken(token)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"message": "Unauthorized access",
					"error":   "Refreshed token validation failed",
				})
				c.Abort()
				return
			}
		}

		c.Set("user", enhanceClaims(c, claims, token, userService, logger))
		c.Set("access_token", token)
		c.Next()
	}
}

// OptionalAuth resolves the caller identity when a valid session cookie is
// present but lets anonymous requests through. Listing endpoints use it to
// widen visibility for authenticated viewers.
func OptionalAuth(userService *services.UserService, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := helpers.ValidateToken(token)
		if err != nil {
			// Anonymous fallback; the cookie may simply be stale.
			c.Next()
			return
		}

		c.Set("user", enhanceClaims(c, claims, token, userService, logger))
		c.Set("access_token", token)
		c.Next()
	}
}

// RequireAdmin gates a route group on the profile role. Must run after
// AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		userClaims, exists := c.Get("user")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, ok := userClaims.(*helpers.EnhancedClaims)
		if !ok || !claims.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "administrator role required"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func enhanceClaims(c *gin.Context, claims *helpers.CustomClaims, token string, userService *services.UserService, logger *slog.Logger) *helpers.EnhancedClaims {
	enhanced := &helpers.EnhancedClaims{
		CustomClaims: claims,
		Role:         "user",
		UserID:       claims.Subject,
		Email:        claims.Email,
	}

	userID, parseErr := uuid.Parse(claims.Subject)
	if parseErr != nil {
		logger.Error("Invalid user ID in token", "user_id", claims.Subject, "error", parseErr)
		return enhanced
	}

	user, err := userService.GetUser(c.Request.Context(), userID, token)
	if err != nil {
		logger.Info("Profile not found, using default role",
			"user_id", claims.Subject,
			"error", err,
		)
		return enhanced
	}

	if user.Role != "" {
		enhanced.Role = user.Role
	}
	enhanced.Name = user.Name
	enhanced.AvatarURL = user.AvatarURL

	return enhanced
}
