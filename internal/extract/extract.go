// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/studynotes/internal/common"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	ExtPDF = ".pdf"
	ExtTXT = ".txt"
)

// DefaultMaxPDFPages is how many leading pages are read when no limit is set.
const DefaultMaxPDFPages = 10

var allowedExtensions = map[string]struct{}{
	ExtPDF: {},
	ExtTXT: {},
}

// Allowed reports whether filename carries an accepted extension.
// The check is case-insensitive.
func Allowed(filename string) bool {
	_, ok := allowedExtensions[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Extractor converts document bytes to text.
type Extractor struct {
	MaxPDFPages int
}

func NewExtractor(maxPDFPages int) *Extractor {
	if maxPDFPages <= 0 {
		maxPDFPages = DefaultMaxPDFPages
	}
	return &Extractor{MaxPDFPages: maxPDFPages}
}

// Extract dispatches on the file extension. Unsupported extensions return
// common.ErrUnsupportedFileType; a PDF that cannot be parsed returns an
// error wrapping common.ErrUnreadableDocument.
func (e *Extractor) Extract(ctx context.Context, filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ExtPDF:
		return e.extractPDF(ctx, data)
	case ExtTXT:
		return DecodeText(data), nil
	default:
		return "", common.ErrUnsupportedFileType
	}
}

func (e *Extractor) extractPDF(ctx context.Context, data []byte) (string, error) {
	r, err := openPDF(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUnreadableDocument, err)
	}

	pages := r.NumPage()
	if pages > e.MaxPDFPages {
		pages = e.MaxPDFPages
	}

	var b strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b.WriteString(pageText(r, i))
	}

	return b.String(), nil
}

// openPDF guards against the parser panicking on malformed input.
func openPDF(data []byte) (r *pdf.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("pdf parser panic: %v", rec)
		}
	}()
	return pdf.NewReader(bytes.NewReader(data), int64(len(data)))
}

// pageText returns the plain text of page i. Broken pages yield "".
func pageText(r *pdf.Reader, i int) (text string) {
	defer func() {
		if rec := recover(); rec != nil {
			text = ""
		}
	}()

	p := r.Page(i)
	if p.V.IsNull() {
		return ""
	}
	t, err := p.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return t
}

// DecodeText reads data as UTF-8, honouring a UTF-8 or UTF-16 byte order
// mark. Bytes that are not valid UTF-8 are dropped; characters already in
// the text, U+FFFD included, are kept.
func DecodeText(data []byte) string {
	s, _, err := transform.String(unicode.BOMOverride(transform.Nop), string(data))
	if err != nil {
		s = string(data)
	}
	return strings.ToValidUTF8(s, "")
}
