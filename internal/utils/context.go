package utils

import (
	"fmt"

	"github.com/clientbridge-dev/clientbridge/internal/authz"
	"github.com/clientbridge-dev/clientbridge/internal/middleware"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/gin-gonic/gin"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

func GetCurrentUserID(ctx *gin.Context) (uint, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return 0, err
	}

	return user.ID, nil
}

// GetIdentity converts the context user into a gate identity. An absent or
// malformed context user yields the unauthenticated zero identity.
func GetIdentity(ctx *gin.Context) authz.Identity {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return authz.Identity{}
	}

	return authz.Identity{
		UserID:        user.ID,
		Role:          user.Role,
		Authenticated: true,
	}
}
