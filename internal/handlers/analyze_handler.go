package handlers

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/hkhan122/ResumeAnalyzer/internal/config"
	"github.com/hkhan122/ResumeAnalyzer/internal/models"
	"github.com/hkhan122/ResumeAnalyzer/internal/services"
)

type AnalyzeHandler struct {
	storageService services.StorageService
	extractor      services.ExtractorService
	analyzer       services.AnalyzerService
	responseFormat string
	maxFileSize    int64
}

func NewAnalyzeHandler(
	storageService services.StorageService,
	extractor services.ExtractorService,
	analyzer services.AnalyzerService,
	responseFormat string,
	maxFileSize int64,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		storageService: storageService,
		extractor:      extractor,
		analyzer:       analyzer,
		responseFormat: responseFormat,
		maxFileSize:    maxFileSize,
	}
}

// HandleAnalyze handles POST /api/analyze: one resume upload in, one
// analysis out. Nothing survives the request.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	if file.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file selected",
		})
	}

	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("File too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	log.Printf("📄 Processing file: %s\n", file.Filename)

	// Stage the upload, then remove it once the request is served.
	filePath, err := h.storageService.SaveUpload(file)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to store the uploaded file",
		})
	}
	defer func() {
		if err := h.storageService.DeleteFile(filePath); err != nil {
			log.Printf("⚠️  Failed to remove staged upload %s: %v\n", filePath, err)
		}
	}()

	data, err := os.ReadFile(filePath)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read the uploaded file",
		})
	}

	text, err := h.extractor.ExtractText(data, file.Filename)
	if err != nil {
		log.Printf("❌ Extraction failed for %s: %v\n", file.Filename, err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to process the file. Please make sure it is a valid PDF, DOCX, or TXT file and try again.",
		})
	}

	result, err := h.analyzer.Analyze(c.UserContext(), text)
	if err != nil {
		// Only reachable when auth failures are configured fatal.
		var remoteErr *services.RemoteError
		if errors.As(err, &remoteErr) && remoteErr.Kind == services.FailureAuth {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Error: Authentication failed. Please check your API key.",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze the resume",
		})
	}

	log.Println("✅ Analysis complete")

	if h.responseFormat == config.FormatLegacy {
		return c.JSON(models.LegacyAnalyzeResponse{
			Analysis: services.RenderReport(result),
		})
	}

	return c.JSON(result)
}
