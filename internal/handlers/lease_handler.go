// internal/handlers/lease_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ain-oman-crm/config"
	"ain-oman-crm/internal/lease"
	"ain-oman-crm/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// --- Input structures ---

type SurchargeInput struct {
	Name string          `json:"name" binding:"required"`
	Rate decimal.Decimal `json:"rate"`
	Mode string          `json:"mode" binding:"required,oneof=total monthly"`
}

type QuotePayload struct {
	UnitID        uint             `json:"unitId" binding:"required"`
	StartDate     string           `json:"startDate"`
	DurationKind  string           `json:"durationKind" binding:"required,oneof=months days"`
	DurationValue int              `json:"durationValue"`
	Surcharges    []SurchargeInput `json:"surcharges" binding:"dive"`
}

type MeterReadingInput struct {
	Reading  string `json:"reading"`
	ImageRef string `json:"imageRef"`
}

type InstrumentInput struct {
	Number    string          `json:"number"`
	ValueDate string          `json:"valueDate"`
	Amount    decimal.Decimal `json:"amount"`
	ImageRef  string          `json:"imageRef"`
}

type TenantInput struct {
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	CivilID     string `json:"civilId"`
	Nationality string `json:"nationality"`
}

type BookingPayload struct {
	UnitID        uint               `json:"unitId" binding:"required"`
	StartDate     string             `json:"startDate"`
	DurationKind  string             `json:"durationKind" binding:"required,oneof=months days"`
	DurationValue int                `json:"durationValue"`
	Surcharges    []SurchargeInput   `json:"surcharges" binding:"dive"`
	Tenant        TenantInput        `json:"tenant"`
	PaymentMethod string             `json:"paymentMethod" binding:"required,oneof=cheques cash bank_transfer"`
	Deposit       decimal.Decimal    `json:"deposit"`
	PowerMeter    MeterReadingInput  `json:"powerMeter"`
	WaterMeter    *MeterReadingInput `json:"waterMeter"`
	Instruments   []InstrumentInput  `json:"instruments"`
	Comment       string             `json:"comment"`
}

// buildLedger converts the request surcharges into an engine ledger.
func buildLedger(inputs []SurchargeInput) *lease.Ledger {
	ledger := &lease.Ledger{}
	for _, s := range inputs {
		ledger.Add(lease.Surcharge{Name: s.Name, Rate: s.Rate, Mode: lease.SurchargeMode(s.Mode)})
	}
	return ledger
}

// buildScheduler sizes a cheque schedule to the contract term and lays the
// request instruments over it by position. Entries beyond the term are
// dropped, missing ones stay as defaults and fail validation later.
func buildScheduler(rent decimal.Decimal, months int, inputs []InstrumentInput) (*lease.Scheduler, error) {
	sched := lease.NewScheduler(rent)
	sched.Resize(months)
	for i, in := range inputs {
		if i >= months {
			break
		}
		valueDate, err := parseDate(in.ValueDate)
		if err != nil {
			return nil, fmt.Errorf("تاريخ الشيك رقم %d غير صالح", i+1)
		}
		patch := lease.InstrumentPatch{Number: &inputs[i].Number, ValueDate: &valueDate}
		if !in.Amount.IsZero() {
			patch.Amount = &inputs[i].Amount
		}
		if in.ImageRef != "" {
			patch.ImageRef = &inputs[i].ImageRef
		}
		if err := sched.Update(i, patch); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

// QuoteLeaseHandler recomputes the contract terms as the user edits the form:
// end date, month count, totals with surcharges and the monthly breakdown.
// Incomplete inputs produce {"ready": false} rather than an error.
func QuoteLeaseHandler(c *gin.Context) {
	var payload QuotePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	var unit models.Unit
	if err := config.DB.First(&unit, payload.UnitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الوحدة غير موجودة"})
		return
	}

	start, err := parseDate(payload.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "تاريخ البداية غير صالح"})
		return
	}

	period := lease.Period{Start: start, Kind: lease.DurationKind(payload.DurationKind), Value: payload.DurationValue}
	end, ok := period.End()
	months := period.Months()
	if !ok || months == 0 {
		c.JSON(http.StatusOK, gin.H{"ready": false})
		return
	}

	ledger := buildLedger(payload.Surcharges)
	baseTotal := lease.TotalRent(unit.MonthlyRent, months)

	c.JSON(http.StatusOK, gin.H{
		"ready":            true,
		"endDate":          end.Format(dateLayout),
		"durationMonths":   months,
		"monthlyRent":      unit.MonthlyRent,
		"currency":         unit.Currency,
		"baseTotal":        baseTotal,
		"municipalFee":     lease.MunicipalFee(baseTotal),
		"totalRent":        ledger.TotalWithSurcharges(unit.MonthlyRent, months),
		"monthlyBreakdown": ledger.MonthlyBreakdown(months, unit.MonthlyRent),
	})
}

// CreateLeaseBookingHandler validates the booking form through the lease
// engine and, when every rule passes, persists the contract, its surcharges
// and its cheque schedule in one transaction.
func CreateLeaseBookingHandler(c *gin.Context) {
	var payload BookingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "بيانات الطلب غير صالحة: " + err.Error()})
		return
	}

	var unit models.Unit
	if err := config.DB.First(&unit, payload.UnitID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "الوحدة غير موجودة"})
		return
	}
	if unit.Status == models.UnitRented {
		c.JSON(http.StatusConflict, gin.H{"error": "الوحدة مؤجرة بالفعل"})
		return
	}

	start, err := parseDate(payload.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "تاريخ البداية غير صالح"})
		return
	}

	period := lease.Period{Start: start, Kind: lease.DurationKind(payload.DurationKind), Value: payload.DurationValue}
	months := period.Months()

	sched, err := buildScheduler(unit.MonthlyRent, months, payload.Instruments)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var water *lease.MeterReading
	if payload.WaterMeter != nil {
		water = &lease.MeterReading{Reading: payload.WaterMeter.Reading, ImageRef: payload.WaterMeter.ImageRef}
	}

	input := lease.BookingInput{
		Unit: lease.UnitInfo{
			UnitID:        unit.ID,
			BuildingID:    unit.BuildingID,
			MonthlyRent:   unit.MonthlyRent,
			Currency:      unit.Currency,
			HasWaterMeter: unit.HasWaterMeter,
		},
		Period:    period,
		Ledger:    buildLedger(payload.Surcharges),
		Scheduler: sched,
		Tenant: lease.TenantInfo{
			Name:        payload.Tenant.Name,
			CountryCode: payload.Tenant.CountryCode,
			Phone:       payload.Tenant.Phone,
			Email:       payload.Tenant.Email,
			CivilID:     payload.Tenant.CivilID,
		},
		Meters: lease.MeterEvidence{
			Power: lease.MeterReading{Reading: payload.PowerMeter.Reading, ImageRef: payload.PowerMeter.ImageRef},
			Water: water,
		},
		Deposit: lease.DepositInfo{Amount: payload.Deposit},
		Method:  lease.PaymentMethod(payload.PaymentMethod),
	}

	booking, violation := lease.ValidateAndBuild(input)
	if violation != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":           violation.Message,
			"rule":            violation.Rule,
			"instrumentIndex": violation.InstrumentIndex,
		})
		return
	}

	endDate, _ := period.End()
	var contract models.LeaseContract

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		tenant := models.Tenant{
			Name:        booking.TenantName,
			CountryCode: strings.TrimSpace(payload.Tenant.CountryCode),
			Phone:       booking.TenantPhone,
			Email:       booking.TenantEmail,
			CivilID:     booking.TenantCivilID,
			Nationality: payload.Tenant.Nationality,
		}
		if tenant.CountryCode == "" {
			tenant.CountryCode = lease.DefaultCountryCode
		}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		contract = models.LeaseContract{
			ContractNumber:    nextContractNumber(tx, booking.StartDate),
			UnitID:            unit.ID,
			TenantID:          tenant.ID,
			StartDate:         booking.StartDate,
			EndDate:           endDate,
			DurationMonths:    booking.DurationMonths,
			MonthlyRent:       unit.MonthlyRent,
			TotalRent:         booking.TotalRent,
			MunicipalFee:      lease.MunicipalFee(lease.TotalRent(unit.MonthlyRent, booking.DurationMonths)),
			DepositAmount:     booking.Deposit.Amount,
			Currency:          booking.Currency,
			PaymentMethod:     string(booking.PaymentMethod),
			Status:            models.ContractActive,
			Comment:           payload.Comment,
			PowerMeterReading: booking.Meters.Power.Reading,
			PowerMeterImage:   booking.Meters.Power.ImageRef,
		}
		if booking.Meters.Water != nil {
			contract.WaterMeterReading = &booking.Meters.Water.Reading
			contract.WaterMeterImage = &booking.Meters.Water.ImageRef
		}
		if err := tx.Create(&contract).Error; err != nil {
			return err
		}

		for _, s := range payload.Surcharges {
			row := models.ContractSurcharge{ContractID: contract.ID, Name: s.Name, Rate: s.Rate, Mode: s.Mode}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		for i, ins := range booking.Instruments {
			row := models.PaymentInstrument{
				ContractID: contract.ID,
				Position:   i + 1,
				Number:     ins.Number,
				ValueDate:  ins.ValueDate,
				Amount:     ins.Amount,
				Status:     string(ins.Status),
				ImagePath:  ins.ImageRef,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		return tx.Model(&unit).Update("status", models.UnitRented).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "تعذر حفظ العقد"})
		return
	}

	notifyLeaseCreated(c, &contract)

	c.JSON(http.StatusCreated, contract)
}

// nextContractNumber produces "LC-<year>-<seq>" based on how many contracts
// the start year already has.
func nextContractNumber(tx *gorm.DB, start time.Time) string {
	var count int64
	tx.Model(&models.LeaseContract{}).
		Where("EXTRACT(YEAR FROM start_date) = ?", start.Year()).
		Count(&count)
	return fmt.Sprintf("LC-%d-%04d", start.Year(), count+1)
}

// ListLeaseContractsHandler returns a filtered, paginated contract list.
func ListLeaseContractsHandler(c *gin.Context) {
	var contracts []models.LeaseContract
	var totalRows int64

	query := config.DB.Model(&models.LeaseContract{}).Preload("Unit").Preload("Tenant")

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if unitID := c.Query("unit_id"); unitID != "" {
		query = query.Where("unit_id = ?", unitID)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Joins("LEFT JOIN tenants ON tenants.id = lease_contracts.tenant_id").
			Where("LOWER(lease_contracts.contract_number) LIKE ? OR LOWER(tenants.name) LIKE ?", pattern, pattern)
	}

	if err := query.Count(&totalRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not count contracts"})
		return
	}

	if err := query.Scopes(Paginate(c)).Order("start_date DESC").Find(&contracts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch contracts"})
		return
	}

	if contracts == nil {
		contracts = make([]models.LeaseContract, 0)
	}
	c.JSON(http.StatusOK, CreatePaginatedResponse(c, contracts, totalRows))
}

// GetLeaseContractHandler returns one contract with its schedule and surcharges.
func GetLeaseContractHandler(c *gin.Context) {
	var contract models.LeaseContract
	err := config.DB.
		Preload("Unit").Preload("Tenant").
		Preload("Surcharges").
		Preload("Instruments", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&contract, c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "العقد غير موجود"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	c.JSON(http.StatusOK, contract)
}

// CancelLeaseContractHandler marks a contract cancelled and frees the unit.
func CancelLeaseContractHandler(c *gin.Context) {
	var contract models.LeaseContract
	if err := config.DB.First(&contract, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "العقد غير موجود"})
		return
	}
	if contract.Status != models.ContractActive {
		c.JSON(http.StatusConflict, gin.H{"error": "العقد غير نشط"})
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&contract).Update("status", models.ContractCancelled).Error; err != nil {
			return err
		}
		return tx.Model(&models.Unit{}).Where("id = ?", contract.UnitID).
			Update("status", models.UnitVacant).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "تعذر إلغاء العقد"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "تم إلغاء العقد"})
}
