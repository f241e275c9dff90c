package render

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry in millimeters, A4 portrait. Automatic page breaks are
// disabled; the pageWriter owns every break decision so a question block is
// never split once space for it was reserved.
const (
	pdfPageWidth    = 210.0
	pdfPageHeight   = 297.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 15.0

	pdfColumnGap = 8.0

	// Points to millimeters at the configured line spacing.
	pdfPtToMM      = 0.3528
	pdfLineSpacing = 1.4
)

// pageWriter is the single-owner cursor/page state of one PDF render call.
// It must never be shared between export calls.
type pageWriter struct {
	pdf       *gofpdf.Fpdf
	translate func(string) string
	opened    bool
}

func newPageWriter() *pageWriter {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	return &pageWriter{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

func lineHeight(size float64) float64 {
	return size * pdfPtToMM * pdfLineSpacing
}

func (w *pageWriter) printableWidth() float64 {
	return pdfPageWidth - pdfMarginLeft - pdfMarginRight
}

func (w *pageWriter) printableHeight() float64 {
	return pdfPageHeight - pdfMarginTop - pdfMarginBottom
}

func (w *pageWriter) setFont(style string, size float64) {
	w.pdf.SetFont("Helvetica", style, size)
}

// ensureSpace starts a new page when no page is open yet or when the
// remaining vertical budget below the cursor is smaller than required.
func (w *pageWriter) ensureSpace(required float64) {
	if !w.opened {
		w.pdf.AddPage()
		w.opened = true
		return
	}
	if w.pdf.GetY()+required > pdfPageHeight-pdfMarginBottom {
		w.pdf.AddPage()
	}
}

// newPage unconditionally starts a fresh page.
func (w *pageWriter) newPage() {
	w.pdf.AddPage()
	w.opened = true
}

// spacer moves the cursor down without writing. It never triggers a page
// break; trailing space at a page bottom is simply lost.
func (w *pageWriter) spacer(h float64) {
	if w.opened {
		w.pdf.SetY(w.pdf.GetY() + h)
	}
}

// writeLine writes one unwrapped line at the left margin.
func (w *pageWriter) writeLine(text, style string, size float64) {
	w.setFont(style, size)
	h := lineHeight(size)
	w.ensureSpace(h)
	w.pdf.SetX(pdfMarginLeft)
	w.pdf.CellFormat(w.printableWidth(), h, w.translate(text), "", 1, "L", false, 0, "")
}

// writeWrappedText greedily packs words into lines not exceeding the
// printable width minus indent, emitting each line separately so every line
// passes through ensureSpace.
func (w *pageWriter) writeWrappedText(text, style string, size, indent float64) {
	w.setFont(style, size)
	width := w.printableWidth() - indent
	h := lineHeight(size)
	for _, line := range w.pdf.SplitText(w.translate(text), width) {
		w.ensureSpace(h)
		w.pdf.SetX(pdfMarginLeft + indent)
		w.pdf.CellFormat(width, h, line, "", 1, "L", false, 0, "")
	}
}

// writeTwoColumnWrappedText wraps the left and right strings independently
// against their own column width and renders them row by row. Rows where one
// column has run out of lines get a blank cell, keeping both columns
// vertically aligned.
func (w *pageWriter) writeTwoColumnWrappedText(left, right, style string, size float64) {
	w.setFont(style, size)
	colWidth := (w.printableWidth() - pdfColumnGap) / 2
	leftLines := w.pdf.SplitText(w.translate(left), colWidth)
	rightLines := w.pdf.SplitText(w.translate(right), colWidth)

	h := lineHeight(size)
	rows := len(leftLines)
	if len(rightLines) > rows {
		rows = len(rightLines)
	}
	for i := 0; i < rows; i++ {
		var l, r string
		if i < len(leftLines) {
			l = leftLines[i]
		}
		if i < len(rightLines) {
			r = rightLines[i]
		}
		w.ensureSpace(h)
		w.pdf.SetX(pdfMarginLeft)
		w.pdf.CellFormat(colWidth, h, l, "", 0, "L", false, 0, "")
		w.pdf.SetX(pdfMarginLeft + colWidth + pdfColumnGap)
		w.pdf.CellFormat(colWidth, h, r, "", 1, "L", false, 0, "")
	}
}

// countLines returns how many lines text occupies when wrapped to width with
// the given font, for height estimation. It must stay in sync with the
// corresponding write call or questions will overflow their reserved space.
func (w *pageWriter) countLines(text, style string, size, width float64) int {
	w.setFont(style, size)
	return len(w.pdf.SplitText(w.translate(text), width))
}

// twoColumnRows returns the visual row count of one two-column pair.
func (w *pageWriter) twoColumnRows(left, right, style string, size float64) int {
	w.setFont(style, size)
	colWidth := (w.printableWidth() - pdfColumnGap) / 2
	rows := len(w.pdf.SplitText(w.translate(left), colWidth))
	if r := len(w.pdf.SplitText(w.translate(right), colWidth)); r > rows {
		rows = r
	}
	return rows
}

func (w *pageWriter) pageCount() int {
	return w.pdf.PageCount()
}

// output finalizes the open page content stream and serializes the document.
func (w *pageWriter) output() ([]byte, error) {
	if !w.opened {
		w.pdf.AddPage()
		w.opened = true
	}
	var buf bytes.Buffer
	if err := w.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize PDF document: %w", err)
	}
	return buf.Bytes(), nil
}
