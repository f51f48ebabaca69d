package services

import (
	"bytes"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/ianaindex"
)

// minPDFTextLength is the threshold below which a PDF is suspected to be a
// scanned document with no embedded text layer.
const minPDFTextLength = 100

// ExtractionError reports that no usable text could be produced from an
// upload. It is the only pipeline failure surfaced to the caller as a user
// error, since without text nothing can be analyzed.
type ExtractionError struct {
	Filename string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s: %v", e.Filename, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

type ExtractorService interface {
	ExtractText(data []byte, filename string) (string, error)
}

type extractorService struct{}

func NewExtractorService() ExtractorService {
	return &extractorService{}
}

// ExtractText dispatches on the filename extension: PDFs go through the page
// parser, everything else is decoded as text with encoding detection.
func (s *extractorService) ExtractText(data []byte, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	var (
		text string
		err  error
	)
	if ext == ".pdf" {
		text, err = extractPDFText(data)
	} else {
		text, err = decodeRawText(data)
	}
	if err != nil {
		return "", &ExtractionError{Filename: filename, Err: err}
	}

	if strings.TrimSpace(text) == "" {
		return "", &ExtractionError{Filename: filename, Err: fmt.Errorf("no text content found")}
	}

	return text, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := reader.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages and keep the rest
			continue
		}

		textBuilder.WriteString(text)
		textBuilder.WriteString("\n\n")
	}

	text := textBuilder.String()
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", fmt.Errorf("no text content found in PDF")
	}
	if len(trimmed) < minPDFTextLength {
		log.Println("⚠️  Minimal text extracted from PDF - might be a scanned document")
	}

	return text, nil
}

// decodeRawText returns valid UTF-8 input unchanged. Anything else goes
// through byte-frequency charset detection before decoding.
func decodeRawText(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return "", fmt.Errorf("failed to detect encoding: %w", err)
	}
	log.Printf("🔤 Detected encoding: %s\n", result.Charset)

	enc, err := ianaindex.IANA.Encoding(result.Charset)
	if err != nil || enc == nil {
		return "", fmt.Errorf("unsupported encoding %q", result.Charset)
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s content: %w", result.Charset, err)
	}

	return string(decoded), nil
}
