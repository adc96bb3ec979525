package middleware

import (
	"net/http"
	"strings"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/auth"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthenticatedUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := bearerToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token is required"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			return
		}

		userIDFloat, ok := claims["user_id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid user ID in token claims"})
			return
		}

		userID := uint(userIDFloat)

		var user models.User

		if err := db.DB.Where("id = ?", userID).First(&user).Error; err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not found"})
			return
		}

		ctx.Set(types.ContextUserKey, AuthenticatedUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		})
		ctx.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user is an admin.
// Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		value, exists := ctx.Get(types.ContextUserKey)

		if !exists {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
			return
		}

		user, ok := value.(AuthenticatedUser)

		if !ok || user.Role != types.RoleAdmin {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "Admin access required"})
			return
		}

		ctx.Next()
	}
}

// bearerToken extracts the JWT from the Authorization header, falling back to
// the session cookie set at login.
func bearerToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}
