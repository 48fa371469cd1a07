package docext

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	apperrors "resume-extractor/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPagesPlainText(t *testing.T) {
	pages, err := ExtractPages("text/plain; charset=utf-8", []byte("Jane Doe\njane@example.com"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Jane Doe\njane@example.com"}, pages)
}

func TestExtractPagesUnsupported(t *testing.T) {
	_, err := ExtractPages("image/png", []byte{0x89, 'P', 'N', 'G'})

	assert.ErrorIs(t, err, apperrors.ErrUnsupportedType)
	assert.True(t, apperrors.IsPermanent(err))
}

func TestExtractPagesInvalidPDF(t *testing.T) {
	_, err := ExtractPages(TypePDF, []byte("%PDF-1.4\nnot really a pdf\n%%EOF"))

	assert.Error(t, err)
}

func TestExtractPagesPDF(t *testing.T) {
	data := buildPDF(
		"BT /F1 12 Tf 72 720 Td (Jane Doe) Tj T* (jane@example.com) Tj ET",
		"BT /F1 12 Tf 72 720 Td (Proficient in Go) Tj ET",
	)

	pages, err := ExtractPages(TypePDF, data)
	require.NoError(t, err)

	require.Len(t, pages, 2)
	assert.Contains(t, pages[0], "Jane Doe")
	assert.Contains(t, pages[0], "jane@example.com")
	assert.Contains(t, pages[1], "Proficient in Go")
}

func TestExtractPagesDocx(t *testing.T) {
	pages, err := ExtractPages(TypeDOCX, buildDocx(t,
		`<w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>`+
			`<w:p><w:r><w:t>R&amp;D Manager</w:t></w:r></w:p>`,
	))
	require.NoError(t, err)

	require.Len(t, pages, 1)
	assert.Contains(t, pages[0], "Jane Doe\n")
	assert.Contains(t, pages[0], "R&D Manager\n")
	assert.NotContains(t, pages[0], "<w:")
}

func TestDetectContentType(t *testing.T) {
	testCases := []struct {
		name     string
		fileName string
		data     []byte
		want     string
	}{
		{name: "pdf magic", fileName: "cv.bin", data: []byte("%PDF-1.7 ..."), want: TypePDF},
		{name: "docx", fileName: "cv.DOCX", data: []byte("PK\x03\x04rest"), want: TypeDOCX},
		{name: "txt extension", fileName: "cv.txt", data: []byte("hello"), want: TypePlain},
		{name: "sniffed text", fileName: "cv", data: []byte("Jane Doe\n"), want: TypePlain},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectContentType(tc.fileName, tc.data))
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("application/pdf"))
	assert.True(t, Supported("text/plain; charset=utf-8"))
	assert.True(t, Supported(TypeDOCX))
	assert.False(t, Supported("image/png"))
	assert.False(t, Supported(""))
}

func buildDocx(t *testing.T, body string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"></Types>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body + `</w:body></w:document>`,
		"word/_rels/document.xml.rels": `<?xml version="1.0" encoding="UTF-8"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`,
	}
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	return buf.Bytes()
}

// buildPDF writes a minimal PDF with one page per content stream.
func buildPDF(contents ...string) []byte {
	n := len(contents)
	// objects: 1 catalog, 2 pages, 3 font, then a page and a stream per content
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	kids := ""
	for i, c := range contents {
		pageObj := 4 + 2*i
		kids += fmt.Sprintf("%d 0 R ", pageObj)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageObj+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", kids, n)

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return buf.Bytes()
}
