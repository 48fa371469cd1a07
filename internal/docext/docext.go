package docext

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "resume-extractor/internal/errors"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	TypePDF   = "application/pdf"
	TypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	TypePlain = "text/plain"
)

// ExtractPages returns the text of each page in document order. A page
// that cannot be read comes back as "" rather than failing the document.
func ExtractPages(contentType string, data []byte) ([]string, error) {
	switch normalizeType(contentType) {
	case TypePlain:
		return []string{string(data)}, nil

	case TypePDF:
		return extractPDFPages(data)

	case TypeDOCX:
		text, err := extractDocxText(data)
		if err != nil {
			return nil, err
		}
		return []string{text}, nil

	default:
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedType, contentType)
	}
}

// DetectContentType picks a supported type from the file name and the
// leading bytes, falling back to net/http sniffing.
func DetectContentType(fileName string, data []byte) string {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return TypePDF
	case strings.EqualFold(filepath.Ext(fileName), ".docx") && bytes.HasPrefix(data, []byte("PK")):
		return TypeDOCX
	case strings.EqualFold(filepath.Ext(fileName), ".txt"):
		return TypePlain
	}
	return normalizeType(http.DetectContentType(data))
}

// Supported reports whether ExtractPages can read contentType.
func Supported(contentType string) bool {
	switch normalizeType(contentType) {
	case TypePlain, TypePDF, TypeDOCX:
		return true
	}
	return false
}

func normalizeType(contentType string) string {
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func extractPDFPages(data []byte) (pages []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf: %w", err)
	}

	numPages := reader.NumPage()
	pages = make([]string, numPages)
	for i := 1; i <= numPages; i++ {
		pages[i-1] = pageText(reader, i)
	}
	return pages, nil
}

// pageText recovers from the panics ledongthuc/pdf raises on malformed
// content streams.
func pageText(reader *pdf.Reader, num int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

var (
	docxBreaks = strings.NewReplacer("</w:p>", "\n", "<w:br/>", "\n", "<w:tab/>", "\t")
	xmlTag     = regexp.MustCompile(`<[^>]+>`)
)

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	content := docxBreaks.Replace(doc.Editable().GetContent())
	return html.UnescapeString(xmlTag.ReplaceAllString(content, "")), nil
}
