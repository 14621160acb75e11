package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"ain-oman-crm/config"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserResponse defines the structure for user data sent in API responses.
// This helps prevent accidental leakage of password hashes.
type UserResponse struct {
	ID        uint      `json:"id"`
	Login     string    `json:"login"`
	FullName  string    `json:"fullName"`
	Phone     string    `json:"phone"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginPayload struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler verifies credentials and issues a JWT cookie plus a bearer
// token for API clients.
func LoginHandler(c *gin.Context) {
	var payload LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("login = ?", payload.Login).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "اسم المستخدم أو كلمة المرور غير صحيحة"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(payload.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "اسم المستخدم أو كلمة المرور غير صحيحة"})
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     expiresAt.Unix(),
	})
	tokenString, err := token.SignedString(config.JwtKey)
	if err != nil {
		slog.Error("Failed to sign JWT", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.SetCookie("auth_token", tokenString, int(time.Until(expiresAt).Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "user": toUserResponse(user)})
}

// LogoutHandler clears the session cookie.
func LogoutHandler(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "تم تسجيل الخروج"})
}

func toUserResponse(user models.User) UserResponse {
	var roleNames []string
	for _, role := range user.Roles {
		roleNames = append(roleNames, role.Name)
	}
	return UserResponse{
		ID:        user.ID,
		Login:     user.Login,
		FullName:  user.FullName,
		Phone:     user.Phone,
		Roles:     roleNames,
		CreatedAt: user.CreatedAt,
	}
}

// ListUsersHandler returns a paginated list of staff accounts with their roles.
func ListUsersHandler(c *gin.Context) {
	var users []models.User
	query := config.DB.Preload("Roles").Order("id asc")

	if c.Query("all") == "true" {
		if err := query.Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
			return
		}
		responseData := make([]UserResponse, 0, len(users))
		for _, user := range users {
			responseData = append(responseData, toUserResponse(user))
		}
		c.JSON(http.StatusOK, gin.H{"data": responseData})
		return
	}

	var totalRows int64
	config.DB.Model(&models.User{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch users"})
		return
	}

	responseData := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responseData = append(responseData, toUserResponse(user))
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, responseData, totalRows))
}

// GetUserHandler retrieves a single staff account by ID.
func GetUserHandler(c *gin.Context) {
	var user models.User
	if err := config.DB.Preload("Roles").First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "المستخدم غير موجود"})
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

type CreateUserPayload struct {
	Login    string `json:"login" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone"`
	RoleIDs  []uint `json:"roleIds"`
}

// CreateUserHandler creates a new staff account.
func CreateUserHandler(c *gin.Context) {
	var payload CreateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Login:        payload.Login,
		FullName:     payload.FullName,
		Phone:        payload.Phone,
		PasswordHash: string(hashedPassword),
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if len(payload.RoleIDs) > 0 {
			var roles []models.Role
			if err := tx.Where("id IN ?", payload.RoleIDs).Find(&roles).Error; err != nil {
				return err
			}
			if err := tx.Model(&user).Association("Roles").Replace(roles); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "اسم المستخدم مستخدم من قبل"})
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

type UpdateUserPayload struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	RoleIDs  []uint `json:"roleIds"`
}

// UpdateUserHandler updates a staff account and invalidates its cache entry.
func UpdateUserHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var payload UpdateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "المستخدم غير موجود"})
		return
	}

	user.FullName = payload.FullName
	user.Phone = payload.Phone

	if payload.Password != "" {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("Failed to hash password during update", "error", err, "user_id", user.ID)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user.PasswordHash = string(hashedPassword)
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		var roles []models.Role
		if len(payload.RoleIDs) > 0 {
			if err := tx.Where("id IN ?", payload.RoleIDs).Find(&roles).Error; err != nil {
				return err
			}
		}
		return tx.Model(&user).Association("Roles").Replace(roles)
	})
	if err != nil {
		slog.Error("Failed to update user", "error", err, "user_id", user.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	if config.RDB != nil {
		cacheKey := fmt.Sprintf("user:%d:data", user.ID)
		if err := config.RDB.Del(config.Ctx, cacheKey).Err(); err != nil {
			slog.Error("Failed to invalidate cache for user", "error", err, "user_id", user.ID)
		}
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUserHandler soft-deletes a staff account.
func DeleteUserHandler(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if result := config.DB.Delete(&models.User{}, id); result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	if config.RDB != nil {
		cacheKey := fmt.Sprintf("user:%d:data", id)
		config.RDB.Del(config.Ctx, cacheKey)
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المستخدم"})
}
