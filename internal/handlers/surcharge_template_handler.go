// internal/handlers/surcharge_template_handler.go
package handlers

import (
	"net/http"

	"ain-oman-crm/config"
	"ain-oman-crm/internal/lease"
	"ain-oman-crm/models"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type SurchargeTemplateInput struct {
	Name    string          `json:"name" binding:"required"`
	Rate    decimal.Decimal `json:"rate"`
	Mode    string          `json:"mode" binding:"required,oneof=total monthly"`
	Formula string          `json:"formula"`
}

// ListSurchargeTemplatesHandler returns all reusable surcharges.
func ListSurchargeTemplatesHandler(c *gin.Context) {
	var templates []models.SurchargeTemplate
	if err := config.DB.Order("name").Find(&templates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch surcharge templates"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": templates})
}

// CreateSurchargeTemplateHandler adds a reusable surcharge. A formula, when
// given, is validated up front so a broken expression never reaches preview.
func CreateSurchargeTemplateHandler(c *gin.Context) {
	var input SurchargeTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	if input.Formula != "" {
		if _, err := govaluate.NewEvaluableExpression(input.Formula); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "الصيغة غير صالحة: " + input.Formula})
			return
		}
	}

	template := models.SurchargeTemplate{
		Name:    input.Name,
		Rate:    input.Rate,
		Mode:    input.Mode,
		Formula: input.Formula,
	}
	if err := config.DB.Create(&template).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create surcharge template: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, template)
}

// DeleteSurchargeTemplateHandler removes a reusable surcharge.
func DeleteSurchargeTemplateHandler(c *gin.Context) {
	if err := config.DB.Delete(&models.SurchargeTemplate{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete surcharge template"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "تم حذف الرسم"})
}

type FormulaPreviewPayload struct {
	UnitID uint `json:"unitId" binding:"required"`
	Months int  `json:"months" binding:"required,min=1"`
}

// PreviewSurchargeFormulaHandler evaluates a template's formula against a
// concrete unit and term, so managers can see the fee a custom formula
// produces before attaching it to a lease. The formula may use the variables
// rent, months and total.
func PreviewSurchargeFormulaHandler(c *gin.Context) {
	var template models.SurchargeTemplate
	if err := config.DB.First(&template, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الرسم غير موجود"})
		return
	}
	if template.Formula == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "لا توجد صيغة لهذا الرسم"})
		return
	}

	var payload FormulaPreviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	var unit models.Unit
	if err := config.DB.First(&unit, payload.UnitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الوحدة غير موجودة"})
		return
	}

	expr, err := govaluate.NewEvaluableExpression(template.Formula)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "الصيغة غير صالحة: " + template.Formula})
		return
	}

	rent, _ := unit.MonthlyRent.Float64()
	total, _ := lease.TotalRent(unit.MonthlyRent, payload.Months).Float64()
	parameters := map[string]interface{}{
		"rent":   rent,
		"months": float64(payload.Months),
		"total":  total,
	}

	result, err := expr.Evaluate(parameters)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "تعذر حساب الصيغة: " + err.Error()})
		return
	}

	amount, ok := result.(float64)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "نتيجة الصيغة ليست رقمًا"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"template": template.Name,
		"amount":   decimal.NewFromFloat(amount).Round(3),
		"currency": unit.Currency,
	})
}
