package slip

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-pdf/fpdf"

	"exam-clearance/internal/domain"
)

const fontFamily = "Helvetica"

// ErrNoRows is returned by Render when there is nothing to print.
var ErrNoRows = errors.New("slip has no course rows")

// Renderer draws the slip layout into a single-page PDF.
type Renderer struct {
	tmpl     Template
	logoType string
	compress bool
}

// NewRenderer validates the template's logo, if any.
func NewRenderer(t Template) (*Renderer, error) {
	r := &Renderer{tmpl: t.withDefaults(), compress: true}
	if len(t.Logo) > 0 {
		switch http.DetectContentType(t.Logo) {
		case "image/png":
			r.logoType = "PNG"
		case "image/jpeg":
			r.logoType = "JPG"
		default:
			return nil, fmt.Errorf("unsupported logo format %q", http.DetectContentType(t.Logo))
		}
	}
	return r, nil
}

// Render writes the PDF for rows to w.
func (r *Renderer) Render(w io.Writer, rows []domain.ExamEntry) error {
	if len(rows) == 0 {
		return ErrNoRows
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(marginLeft, marginLeft, marginLeft)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(r.compress)
	pdf.SetTitle(r.tmpl.Title, true)
	pdf.SetCreator(r.tmpl.Institution, true)
	pdf.AddPage()

	if r.logoType != "" {
		opts := fpdf.ImageOptions{ImageType: r.logoType}
		pdf.RegisterImageOptionsReader("logo", opts, bytes.NewReader(r.tmpl.Logo))
		pdf.ImageOptions("logo", marginLeft, 40, 40, 0, false, opts, 0, "")
	}

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, el := range Layout(r.tmpl, rows) {
		style := ""
		if el.Bold {
			style = "B"
		}
		pdf.SetFont(fontFamily, style, el.Size)
		pdf.SetXY(el.X, el.Y)
		pdf.CellFormat(el.Width, el.Size*1.2, tr(el.Text), "", 0, el.Align, false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
