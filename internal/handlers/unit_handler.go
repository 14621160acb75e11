// internal/handlers/unit_handler.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"ain-oman-crm/config"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UnitInput struct {
	BuildingID       uint            `json:"buildingId" binding:"required"`
	UnitNumber       string          `json:"unitNumber" binding:"required"`
	Floor            string          `json:"floor"`
	Bedrooms         int             `json:"bedrooms"`
	UnitType         string          `json:"unitType"`
	MonthlyRent      decimal.Decimal `json:"monthlyRent"`
	Currency         string          `json:"currency"`
	PowerMeterNumber string          `json:"powerMeterNumber"`
	HasWaterMeter    bool            `json:"hasWaterMeter"`
	WaterMeterNumber string          `json:"waterMeterNumber"`
}

// ListUnitsHandler returns a filtered, paginated unit list.
func ListUnitsHandler(c *gin.Context) {
	var units []models.Unit
	var totalRows int64

	query := config.DB.Model(&models.Unit{}).Preload("Building")

	if buildingID := c.Query("building_id"); buildingID != "" {
		query = query.Where("building_id = ?", buildingID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(unit_number) LIKE ? OR LOWER(unit_type) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count units"})
		return
	}

	if err := query.Scopes(Paginate(c)).Order("unit_number").Find(&units).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch units"})
		return
	}

	if units == nil {
		units = make([]models.Unit, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, units, totalRows))
}

// GetUnitHandler returns one unit with its building.
func GetUnitHandler(c *gin.Context) {
	var unit models.Unit
	if err := config.DB.Preload("Building").First(&unit, c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "الوحدة غير موجودة"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, unit)
}

// CreateUnitHandler adds a unit to a building.
func CreateUnitHandler(c *gin.Context) {
	var input UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	var building models.Building
	if err := config.DB.First(&building, input.BuildingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "المبنى غير موجود"})
		return
	}

	currency := input.Currency
	if currency == "" {
		currency = "OMR"
	}

	unit := models.Unit{
		BuildingID:       input.BuildingID,
		UnitNumber:       input.UnitNumber,
		Floor:            input.Floor,
		Bedrooms:         input.Bedrooms,
		UnitType:         input.UnitType,
		MonthlyRent:      input.MonthlyRent,
		Currency:         currency,
		PowerMeterNumber: input.PowerMeterNumber,
		HasWaterMeter:    input.HasWaterMeter,
		WaterMeterNumber: input.WaterMeterNumber,
		Status:           models.UnitVacant,
	}

	if err := config.DB.Create(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create unit: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, unit)
}

// UpdateUnitHandler edits a unit's lease-relevant attributes.
func UpdateUnitHandler(c *gin.Context) {
	var unit models.Unit
	if err := config.DB.First(&unit, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الوحدة غير موجودة"})
		return
	}

	var input UnitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	unit.BuildingID = input.BuildingID
	unit.UnitNumber = input.UnitNumber
	unit.Floor = input.Floor
	unit.Bedrooms = input.Bedrooms
	unit.UnitType = input.UnitType
	unit.MonthlyRent = input.MonthlyRent
	if input.Currency != "" {
		unit.Currency = input.Currency
	}
	unit.PowerMeterNumber = input.PowerMeterNumber
	unit.HasWaterMeter = input.HasWaterMeter
	unit.WaterMeterNumber = input.WaterMeterNumber

	if err := config.DB.Save(&unit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update unit"})
		return
	}

	c.JSON(http.StatusOK, unit)
}

// DeleteUnitHandler removes a unit unless it has an active contract.
func DeleteUnitHandler(c *gin.Context) {
	var count int64
	config.DB.Model(&models.LeaseContract{}).
		Where("unit_id = ? AND status = ?", c.Param("id"), models.ContractActive).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "لا يمكن حذف وحدة مرتبطة بعقد نشط"})
		return
	}

	if err := config.DB.Delete(&models.Unit{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete unit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الوحدة"})
}
