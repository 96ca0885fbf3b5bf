// Package report renders a processed document as a downloadable PDF.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

const (
	title      = "Study Notes"
	fontFamily = "Helvetica"
	lineHeight = 7.0
	margin     = 15.0
)

// Document is the content of one report.
type Document struct {
	Branch    string
	Subject   string
	Summary   string
	Questions []string
}

// Render lays out doc on A4 pages and returns the PDF bytes. Long text is
// wrapped to the printable width; a page is added whenever the next line
// would cross the bottom margin. Text is mapped to cp1252; runes outside it
// are printed as '.'.
func Render(doc Document) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("render report: %v", r)
		}
	}()

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	w := &writer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFont(fontFamily, "B", 16)
	w.line(title, 10)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "", 12)
	w.paragraph("Branch: " + doc.Branch)
	w.paragraph("Subject: " + doc.Subject)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 13)
	w.line("Summary", lineHeight)
	pdf.SetFont(fontFamily, "", 12)
	w.paragraph(doc.Summary)
	pdf.Ln(4)

	pdf.SetFont(fontFamily, "B", 13)
	w.line("Questions", lineHeight)
	pdf.SetFont(fontFamily, "", 12)
	for i, q := range doc.Questions {
		w.paragraph(fmt.Sprintf("%d. %s", i+1, q))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

type writer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (w *writer) textWidth() float64 {
	pageW, _ := w.pdf.GetPageSize()
	left, _, right, _ := w.pdf.GetMargins()
	return pageW - left - right
}

// breakIfNeeded starts a new page when a line of height h does not fit.
func (w *writer) breakIfNeeded(h float64) {
	_, pageH := w.pdf.GetPageSize()
	_, _, _, bottom := w.pdf.GetMargins()
	if w.pdf.GetY()+h > pageH-bottom {
		w.pdf.AddPage()
	}
}

func (w *writer) line(s string, h float64) {
	w.breakIfNeeded(h)
	w.pdf.CellFormat(0, h, w.tr(s), "", 1, "L", false, 0, "")
}

func (w *writer) paragraph(s string) {
	s = strings.TrimSpace(s)
	if s == "" {
		w.line("", lineHeight)
		return
	}
	// the translated text is single-byte, so split bytes rather than runes
	for _, l := range w.pdf.SplitLines([]byte(w.tr(s)), w.textWidth()) {
		w.breakIfNeeded(lineHeight)
		w.pdf.CellFormat(0, lineHeight, string(l), "", 1, "L", false, 0, "")
	}
}
