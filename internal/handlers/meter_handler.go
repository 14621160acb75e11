// internal/handlers/meter_handler.go
package handlers

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"ain-oman-crm/config"

	"github.com/gin-gonic/gin"
	"github.com/google/generative-ai-go/genai"
)

// UploadMeterPhotoHandler accepts a meter photo and returns the opaque
// reference the booking form submits later. The engine itself never touches
// files; it only records whether a reference is present.
func UploadMeterPhotoHandler(c *gin.Context) {
	path, err := saveUploadedFile(c, "photo", "./storage/meters")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "تعذر حفظ صورة العداد"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imageRef": path})
}

// RecognizeMeterReadingHandler sends a meter photo to Gemini and extracts the
// displayed reading, so the form can be pre-filled instead of typed in.
func RecognizeMeterReadingHandler(c *gin.Context) {
	if config.GeminiClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Recognition service is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Meter photo is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
	defer cancel()

	prompt := []genai.Part{
		genai.Text("You are a utility meter reading assistant. Look at the provided photo of an electricity or water meter and extract the numeric reading shown on its display, plus the meter serial number if visible. Answer with JSON only, no extra words, in this exact structure:\n" +
			`{"reading": "", "meterNumber": ""}`),
		&genai.Blob{MIMEType: header.Header.Get("Content-Type"), Data: data},
	}

	resp, err := config.GeminiClient.GenerateContent(ctx, prompt...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gemini recognition error: " + err.Error()})
		return
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Gemini returned no result"})
		return
	}

	jsonResponse, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to convert Gemini response to text"})
		return
	}

	cleanJSON := strings.Trim(string(jsonResponse), "```json \n")
	c.Data(http.StatusOK, "application/json", []byte(cleanJSON))
}
