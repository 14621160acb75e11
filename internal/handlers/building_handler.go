// internal/handlers/building_handler.go
package handlers

import (
	"net/http"
	"strings"

	"ain-oman-crm/config"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
)

type BuildingInput struct {
	Name     string `json:"name" binding:"required"`
	Address  string `json:"address"`
	Wilayat  string `json:"wilayat"`
	Comment  string `json:"comment"`
	OwnerRef string `json:"ownerRef"`
}

// ListBuildingsHandler returns a paginated building list.
func ListBuildingsHandler(c *gin.Context) {
	var buildings []models.Building
	var totalRows int64

	query := config.DB.Model(&models.Building{})
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(address) LIKE ? OR LOWER(wilayat) LIKE ?",
			pattern, pattern, pattern)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count buildings"})
		return
	}
	if err := query.Scopes(Paginate(c)).Order("name").Find(&buildings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch buildings"})
		return
	}

	if buildings == nil {
		buildings = make([]models.Building, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, buildings, totalRows))
}

// GetBuildingHandler returns one building with its units.
func GetBuildingHandler(c *gin.Context) {
	var building models.Building
	if err := config.DB.Preload("Units").First(&building, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "المبنى غير موجود"})
		return
	}
	c.JSON(http.StatusOK, building)
}

// CreateBuildingHandler registers a new building.
func CreateBuildingHandler(c *gin.Context) {
	var input BuildingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	building := models.Building{
		Name:     input.Name,
		Address:  input.Address,
		Wilayat:  input.Wilayat,
		Comment:  input.Comment,
		OwnerRef: input.OwnerRef,
	}
	if err := config.DB.Create(&building).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create building: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, building)
}

// UpdateBuildingHandler edits a building.
func UpdateBuildingHandler(c *gin.Context) {
	var building models.Building
	if err := config.DB.First(&building, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "المبنى غير موجود"})
		return
	}

	var input BuildingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	building.Name = input.Name
	building.Address = input.Address
	building.Wilayat = input.Wilayat
	building.Comment = input.Comment
	building.OwnerRef = input.OwnerRef

	if err := config.DB.Save(&building).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update building"})
		return
	}
	c.JSON(http.StatusOK, building)
}

// DeleteBuildingHandler removes an empty building.
func DeleteBuildingHandler(c *gin.Context) {
	var count int64
	config.DB.Model(&models.Unit{}).Where("building_id = ?", c.Param("id")).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "لا يمكن حذف مبنى يحتوي على وحدات"})
		return
	}

	if err := config.DB.Delete(&models.Building{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete building"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف المبنى"})
}
