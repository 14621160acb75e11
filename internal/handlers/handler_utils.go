package handlers

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/divan/num2words"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// parseDate parses the API's date format. A missing value is returned as the
// zero time, which the lease engine treats as "not ready".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// amountInWords renders a rial amount the way it is printed on a cheque:
// whole rials in words plus the baisa remainder (1 OMR = 1000 baisa).
func amountInWords(amount decimal.Decimal) string {
	f, _ := amount.Float64()
	rials := int(f)
	baisa := int(math.Round((f - float64(rials)) * 1000))
	return fmt.Sprintf("%s rials %03d baisa", num2words.Convert(rials), baisa)
}

// saveUploadedFile stores one multipart file under uploadDir with a UUID name
// and returns the stored path.
func saveUploadedFile(c *gin.Context, formKey, uploadDir string) (string, error) {
	file, err := c.FormFile(formKey)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", err
	}
	newFileName := fmt.Sprintf("%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	dst := filepath.Join(uploadDir, newFileName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// getUserIDFromContext reads the user id set by the auth middleware.
func getUserIDFromContext(c *gin.Context) (uint, error) {
	val, ok := c.Get("user_id")
	if !ok {
		return 0, fmt.Errorf("user_id is missing from context")
	}
	switch v := val.(type) {
	case uint:
		return v, nil
	case int:
		return uint(v), nil
	case int64:
		return uint(v), nil
	case float64:
		return uint(v), nil
	default:
		return 0, fmt.Errorf("unexpected user_id type: %T", val)
	}
}
