// internal/handlers/tenant_handler.go
package handlers

import (
	"net/http"
	"strings"

	"ain-oman-crm/config"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
)

// ListTenantsHandler returns a filtered, paginated tenant list.
func ListTenantsHandler(c *gin.Context) {
	var tenants []models.Tenant
	var totalRows int64

	query := config.DB.Model(&models.Tenant{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ? OR civil_id LIKE ?",
			pattern, "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count tenants"})
		return
	}
	if err := query.Scopes(Paginate(c)).Order("name").Find(&tenants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch tenants"})
		return
	}

	if tenants == nil {
		tenants = make([]models.Tenant, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, tenants, totalRows))
}

// GetTenantHandler returns one tenant.
func GetTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "المستأجر غير موجود"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}

// GetTenantContractsHandler lists all contracts of a tenant.
func GetTenantContractsHandler(c *gin.Context) {
	var contracts []models.LeaseContract
	err := config.DB.Preload("Unit").
		Where("tenant_id = ?", c.Param("id")).
		Order("start_date DESC").
		Find(&contracts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch contracts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": contracts})
}

// UpdateTenantHandler edits a tenant's contact details. Tenants are created
// by the booking flow, not here.
func UpdateTenantHandler(c *gin.Context) {
	var tenant models.Tenant
	if err := config.DB.First(&tenant, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "المستأجر غير موجود"})
		return
	}

	var input struct {
		Name        string `json:"name" binding:"required"`
		Email       string `json:"email"`
		Nationality string `json:"nationality"`
		Comment     string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	tenant.Name = input.Name
	tenant.Email = input.Email
	tenant.Nationality = input.Nationality
	tenant.Comment = input.Comment

	if err := config.DB.Save(&tenant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update tenant"})
		return
	}
	c.JSON(http.StatusOK, tenant)
}
