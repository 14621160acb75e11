package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"ain-oman-crm/config"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RolePayload struct {
	Name          string `json:"name" binding:"required"`
	Description   string `json:"description"`
	PermissionIDs []uint `json:"permissionIds"`
}

// ListRolesHandler fetches all roles with their associated permissions.
func ListRolesHandler(c *gin.Context) {
	var roles []models.Role
	query := config.DB.Preload("Permissions").Order("name")

	if c.Query("all") == "true" {
		if err := query.Find(&roles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch roles"})
			return
		}
		if roles == nil {
			roles = make([]models.Role, 0)
		}
		c.JSON(http.StatusOK, roles)
		return
	}

	var totalRows int64
	config.DB.Model(&models.Role{}).Count(&totalRows)

	if err := query.Scopes(Paginate(c)).Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch roles"})
		return
	}
	if roles == nil {
		roles = make([]models.Role, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, roles, totalRows))
}

// GetRoleHandler fetches a single role by its ID.
func GetRoleHandler(c *gin.Context) {
	var role models.Role
	if err := config.DB.Preload("Permissions").First(&role, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الدور غير موجود"})
		return
	}
	c.JSON(http.StatusOK, role)
}

// CreateRoleHandler creates a role and binds its permissions.
func CreateRoleHandler(c *gin.Context) {
	var payload RolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := models.Role{Name: payload.Name, Description: payload.Description}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&role).Error; err != nil {
			return err
		}
		if len(payload.PermissionIDs) > 0 {
			var permissions []models.Permission
			if err := tx.Where("id IN ?", payload.PermissionIDs).Find(&permissions).Error; err != nil {
				return err
			}
			if err := tx.Model(&role).Association("Permissions").Replace(permissions); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "اسم الدور مستخدم من قبل"})
		return
	}
	c.JSON(http.StatusCreated, role)
}

// UpdateRoleHandler updates a role's name and permission set. Cached session
// data of every user holding the role is invalidated so the new matrix takes
// effect without re-login.
func UpdateRoleHandler(c *gin.Context) {
	var role models.Role
	if err := config.DB.First(&role, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الدور غير موجود"})
		return
	}

	var payload RolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role.Name = payload.Name
	role.Description = payload.Description

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&role).Error; err != nil {
			return err
		}
		var permissions []models.Permission
		if len(payload.PermissionIDs) > 0 {
			if err := tx.Where("id IN ?", payload.PermissionIDs).Find(&permissions).Error; err != nil {
				return err
			}
		}
		return tx.Model(&role).Association("Permissions").Replace(permissions)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role"})
		return
	}

	if config.RDB != nil {
		go func() {
			var userIDs []uint
			config.DB.Table("user_roles").Where("role_id = ?", role.ID).Pluck("user_id", &userIDs)
			for _, userID := range userIDs {
				cacheKey := fmt.Sprintf("user:%d:data", userID)
				if err := config.RDB.Del(config.Ctx, cacheKey).Err(); err != nil {
					slog.Warn("Failed to invalidate cache for user", "error", err, "user_id", userID)
				}
			}
			if len(userIDs) > 0 {
				slog.Info("Cache invalidated after role update", "role", role.Name, "user_count", len(userIDs))
			}
		}()
	}

	c.JSON(http.StatusOK, role)
}

// DeleteRoleHandler deletes a role by its ID.
func DeleteRoleHandler(c *gin.Context) {
	result := config.DB.Delete(&models.Role{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete role"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "الدور غير موجود"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الدور"})
}
