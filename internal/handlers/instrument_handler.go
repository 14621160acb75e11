// internal/handlers/instrument_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"time"

	"ain-oman-crm/config"
	"ain-oman-crm/internal/lease"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// UnifyInstrumentsPayload carries the draft schedule the user is editing.
// The first entry is the anchor; it must already have a number and a date.
type UnifyInstrumentsPayload struct {
	UnitID      uint              `json:"unitId" binding:"required"`
	Months      int               `json:"months" binding:"required,min=1"`
	Instruments []InstrumentInput `json:"instruments" binding:"required,min=1"`
}

// UnifyInstrumentsHandler regenerates every cheque after the first from the
// first cheque's date and number: monthly date increments and a sequentially
// incremented cheque number. The result is returned for the form to display;
// nothing is persisted until the booking is submitted.
func UnifyInstrumentsHandler(c *gin.Context) {
	var payload UnifyInstrumentsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	var unit models.Unit
	if err := config.DB.First(&unit, payload.UnitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الوحدة غير موجودة"})
		return
	}

	sched, err := buildScheduler(unit.MonthlyRent, payload.Months, payload.Instruments)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sched.UnifyFromFirst(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "يجب إدخال رقم وتاريخ الشيك الأول قبل التوحيد"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":       sched.State(),
		"instruments": sched.Instruments,
	})
}

// ListContractInstrumentsHandler returns the persisted cheque schedule of a
// contract, in schedule order.
func ListContractInstrumentsHandler(c *gin.Context) {
	var instruments []models.PaymentInstrument
	err := config.DB.
		Where("contract_id = ?", c.Param("id")).
		Order("position ASC").
		Find(&instruments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch instruments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": instruments})
}

// InstrumentStatusPayload updates one cheque's lifecycle state.
type InstrumentStatusPayload struct {
	Status  string `json:"status" binding:"required,oneof=pending cleared returned refunded"`
	Comment string `json:"comment"`
}

// UpdateInstrumentStatusHandler moves a persisted cheque between statuses
// (a returned cheque triggers a dashboard notification).
func UpdateInstrumentStatusHandler(c *gin.Context) {
	var instrument models.PaymentInstrument
	if err := config.DB.First(&instrument, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الشيك غير موجود"})
		return
	}

	var payload InstrumentStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	updates := map[string]interface{}{"status": payload.Status, "comment": payload.Comment}
	if err := config.DB.Model(&instrument).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update instrument"})
		return
	}

	if payload.Status == string(lease.InstrumentReturned) {
		notifyChequeReturned(c, &instrument)
	}

	c.JSON(http.StatusOK, instrument)
}

// UploadInstrumentImageHandler attaches a cheque photo to a persisted cheque.
func UploadInstrumentImageHandler(c *gin.Context) {
	var instrument models.PaymentInstrument
	if err := config.DB.First(&instrument, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الشيك غير موجود"})
		return
	}

	path, err := saveUploadedFile(c, "image", "./storage/cheques")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "تعذر حفظ صورة الشيك"})
		return
	}

	if err := config.DB.Model(&instrument).Update("image_path", path).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update instrument"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imagePath": path})
}

// ExportContractInstrumentsHandler writes the cheque register of a contract
// as an Excel file, with amounts spelled out for the cheque book.
func ExportContractInstrumentsHandler(c *gin.Context) {
	var contract models.LeaseContract
	if err := config.DB.Preload("Tenant").First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "العقد غير موجود"})
		return
	}

	var instruments []models.PaymentInstrument
	if err := config.DB.Where("contract_id = ?", contract.ID).Order("position ASC").Find(&instruments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch instruments"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Cheques"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"No.", "Cheque Number", "Value Date", "Amount", "Amount in Words", "Status", "Tenant", "Contract"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	tenantName := ""
	if contract.Tenant != nil {
		tenantName = contract.Tenant.Name
	}

	for i, ins := range instruments {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), ins.Position)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), ins.Number)
		if !ins.ValueDate.IsZero() {
			f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), ins.ValueDate.Format(dateLayout))
		}
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), ins.Amount.StringFixed(3))
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), amountInWords(ins.Amount))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), ins.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), tenantName)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), contract.ContractNumber)
	}

	fileName := fmt.Sprintf("cheques_%s_%s.xlsx", contract.ContractNumber, time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
