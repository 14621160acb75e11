package handlers

import (
	"net/http"

	"ain-oman-crm/config"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
)

type PermissionPayload struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"required"`
}

// ListPermissionsHandler returns all permissions grouped by category.
func ListPermissionsHandler(c *gin.Context) {
	var permissions []models.Permission
	if err := config.DB.Order("category asc, name asc").Find(&permissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch permissions"})
		return
	}
	if permissions == nil {
		permissions = make([]models.Permission, 0)
	}
	c.JSON(http.StatusOK, permissions)
}

// CreatePermissionHandler registers a new permission key.
func CreatePermissionHandler(c *gin.Context) {
	var payload PermissionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	permission := models.Permission{
		Name:        payload.Name,
		Description: payload.Description,
		Category:    payload.Category,
	}
	if err := config.DB.Create(&permission).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "الصلاحية موجودة من قبل"})
		return
	}
	c.JSON(http.StatusCreated, permission)
}

// UpdatePermissionHandler updates an existing permission.
func UpdatePermissionHandler(c *gin.Context) {
	var permission models.Permission
	if err := config.DB.First(&permission, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الصلاحية غير موجودة"})
		return
	}
	var payload PermissionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	permission.Name = payload.Name
	permission.Description = payload.Description
	permission.Category = payload.Category

	if err := config.DB.Save(&permission).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update permission"})
		return
	}
	c.JSON(http.StatusOK, permission)
}

// DeletePermissionHandler removes a permission unless a role still uses it.
func DeletePermissionHandler(c *gin.Context) {
	id := c.Param("id")

	var count int64
	config.DB.Table("role_permissions").Where("permission_id = ?", id).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "لا يمكن حذف الصلاحية لأنها مرتبطة بدور"})
		return
	}

	result := config.DB.Delete(&models.Permission{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete permission"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "الصلاحية غير موجودة"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الصلاحية"})
}
