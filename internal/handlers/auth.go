package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/auth"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/clientbridge-dev/clientbridge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type UpdateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=8"`
}

func toUserResponse(u models.User) types.UserResponse {
	return types.UserResponse{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		Phone:   u.Phone,
		Company: u.Company,
	}
}

func setSessionCookie(ctx *gin.Context, token string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   maxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func CreateUser(ctx *gin.Context) {
	var user CreateUserRequest

	if err := ctx.BindJSON(&user); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", user.Email).First(&existingUser).Error

	if err == nil {
		respondError(ctx, http.StatusBadRequest, "Email already exists")
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	passwordHash, err := auth.HashPassword(user.Password)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	newUser := models.User{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: passwordHash,
		Role:         types.RoleClient,
		Phone:        user.Phone,
		Company:      user.Company,
	}

	if err := db.DB.Create(&newUser).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, err := auth.GenerateJWT(newUser.ID, newUser.Email, newUser.Role)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	setSessionCookie(ctx, token, 60*60*24*7)

	respondData(ctx, http.StatusCreated, gin.H{
		"token": token,
		"user":  toUserResponse(newUser),
	})
}

func LoginUser(ctx *gin.Context) {
	var user LoginUserRequest

	if err := ctx.BindJSON(&user); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	var existingUser models.User

	err := db.DB.Where("email = ?", user.Email).First(&existingUser).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusBadRequest, "Invalid email or password")
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !auth.CheckPassword(user.Password, existingUser.PasswordHash) {
		respondError(ctx, http.StatusBadRequest, "Invalid email or password")
		return
	}

	token, err := auth.GenerateJWT(existingUser.ID, existingUser.Email, existingUser.Role)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	setSessionCookie(ctx, token, 60*60*24*7)

	respondData(ctx, http.StatusOK, gin.H{
		"token": token,
		"user":  toUserResponse(existingUser),
	})
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var dbUser models.User

	if err := db.DB.First(&dbUser, currentUser.ID).Error; err != nil {
		log.Printf("Failed to fetch user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(ctx, http.StatusOK, gin.H{"user": toUserResponse(dbUser)})
}

func LogoutUser(ctx *gin.Context) {
	setSessionCookie(ctx, "", -1)

	respondMessage(ctx, http.StatusOK, "Logged out successfully")
}

func UpdateUser(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)
	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var dbUser models.User
	if err := db.DB.First(&dbUser, currentUser.ID).Error; err != nil {
		log.Printf("Failed to fetch user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	var updateReq UpdateUserRequest
	if err := ctx.BindJSON(&updateReq); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		respondError(ctx, http.StatusBadRequest, "Invalid request")
		return
	}

	updates := make(map[string]interface{})

	if updateReq.Name != "" {
		updates["name"] = strings.TrimSpace(updateReq.Name)
	}

	if updateReq.Phone != "" {
		updates["phone"] = strings.TrimSpace(updateReq.Phone)
	}

	if updateReq.Company != "" {
		updates["company"] = strings.TrimSpace(updateReq.Company)
	}

	if updateReq.Email != "" {
		newEmail := strings.ToLower(strings.TrimSpace(updateReq.Email))

		if newEmail != dbUser.Email {
			var existingUser models.User
			err := db.DB.Where("email = ? AND id != ?", newEmail, dbUser.ID).First(&existingUser).Error
			if err == nil {
				respondError(ctx, http.StatusBadRequest, "Email already exists")
				return
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Printf("Database error when checking existing email: %v", err)
				respondError(ctx, http.StatusInternalServerError, "Internal server error")
				return
			}
		}

		updates["email"] = newEmail
	}

	if updateReq.NewPassword != "" {
		if updateReq.CurrentPassword == "" {
			respondError(ctx, http.StatusBadRequest, "Current password is required to change password")
			return
		}

		if !auth.CheckPassword(updateReq.CurrentPassword, dbUser.PasswordHash) {
			respondError(ctx, http.StatusBadRequest, "Current password is incorrect")
			return
		}

		passwordHash, err := auth.HashPassword(updateReq.NewPassword)
		if err != nil {
			log.Printf("Failed to hash new password: %v", err)
			respondError(ctx, http.StatusInternalServerError, "Internal server error")
			return
		}

		updates["password_hash"] = passwordHash
	}

	if len(updates) == 0 {
		respondError(ctx, http.StatusBadRequest, "No valid fields to update")
		return
	}

	if err := db.DB.Model(&dbUser).Updates(updates).Error; err != nil {
		log.Printf("Failed to update user: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := db.DB.First(&dbUser, dbUser.ID).Error; err != nil {
		log.Printf("Failed to refresh user data: %v", err)
		respondError(ctx, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondData(ctx, http.StatusOK, gin.H{"user": toUserResponse(dbUser)})
}
