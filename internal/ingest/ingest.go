// Package ingest extracts plain text from uploaded resume files. PDF and
// DOCX are the supported formats; anything else is rejected with a
// validation error whose message is safe to show to the uploader.
package ingest

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"skillfit/internal/errors"
)

// UnsupportedFileMessage is returned verbatim to clients that upload a
// file format the extractor does not handle.
const UnsupportedFileMessage = "Unsupported file type. Please upload a PDF or DOCX resume."

var (
	xmlTagPattern     = regexp.MustCompile(`<[^>]+>`)
	spaceRunPattern   = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRunPattern = regexp.MustCompile(`\n+`)
)

// SupportedExtensions lists the file extensions Extract accepts, in
// lowercase with the leading dot.
func SupportedExtensions() []string {
	return []string{".pdf", ".docx"}
}

// Supported reports whether the filename carries an extension Extract
// can handle. The check is case-insensitive.
func Supported(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, s := range SupportedExtensions() {
		if ext == s {
			return true
		}
	}
	return false
}

// Extract returns the plain text of a resume file. The format is chosen
// by the filename extension, case-insensitively. Unsupported extensions
// yield a validation error carrying UnsupportedFileMessage; parse
// failures yield an extraction error wrapping the library cause.
func Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return extractPDF(data)
	case ".docx":
		return extractDOCX(data)
	default:
		return "", errors.NewValidationError(
			errors.ErrCodeUnsupportedFile,
			UnsupportedFileMessage,
			nil,
		).WithContext("filename", filename)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(
			errors.ErrCodeExtractionFailed,
			"failed to open PDF document",
			err,
		)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", errors.NewExtractionError(
			errors.ErrCodeExtractionFailed,
			"failed to read PDF text",
			err,
		)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", errors.NewExtractionError(
			errors.ErrCodeExtractionFailed,
			"failed to read PDF text",
			err,
		)
	}
	return cleanText(buf.String()), nil
}

// extractDOCX pulls the text out of word/document.xml. Paragraph ends
// become newlines and explicit tabs become tab characters before the
// remaining markup is stripped.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(
			errors.ErrCodeExtractionFailed,
			"failed to open DOCX archive",
			err,
		)
	}

	var document []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errors.NewExtractionError(
				errors.ErrCodeExtractionFailed,
				"failed to open DOCX document part",
				err,
			)
		}
		document, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", errors.NewExtractionError(
				errors.ErrCodeExtractionFailed,
				"failed to read DOCX document part",
				err,
			)
		}
		break
	}
	if len(document) == 0 {
		return "", errors.NewExtractionError(
			errors.ErrCodeExtractionFailed,
			"DOCX archive has no word/document.xml",
			nil,
		)
	}

	text := string(document)
	text = strings.ReplaceAll(text, "</w:p>", "\n")
	text = strings.ReplaceAll(text, "<w:tab/>", "\t")
	text = xmlTagPattern.ReplaceAllString(text, " ")
	return cleanText(text), nil
}

// cleanText collapses whitespace runs while keeping paragraph breaks as
// single newlines.
func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = spaceRunPattern.ReplaceAllString(s, " ")
	s = newlineRunPattern.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
