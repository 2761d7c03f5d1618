// Package label prints shelf tags: a QR code of the product SKU next to its name and price.
package label

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"github.com/MrJamesThe3rd/sapataria/internal/inventory"
	"github.com/MrJamesThe3rd/sapataria/internal/money"
)

var ErrNoProducts = errors.New("no products to label")

// Layout positions tags on an A4 sheet, in millimeters.
type Layout struct {
	Cols       int
	Rows       int
	MarginTop  float64
	MarginLeft float64
	GapX       float64
	GapY       float64
}

// DefaultLayout fits 3 x 8 adhesive tags.
var DefaultLayout = Layout{Cols: 3, Rows: 8, MarginTop: 10, MarginLeft: 8, GapX: 4, GapY: 2}

const (
	pageWidth  = 210.0
	pageHeight = 297.0
	qrPixels   = 256
)

// Content is what the QR code of p encodes: its SKU, or its id when it has none.
func Content(p inventory.Product) string {
	if p.SKU != "" {
		return p.SKU
	}

	return p.ID.String()
}

// QR renders the code of p as a PNG of size x size pixels.
func QR(p inventory.Product, size int) ([]byte, error) {
	png, err := qrcode.Encode(Content(p), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encoding qr for %s: %w", p.ID, err)
	}

	return png, nil
}

// PDF writes one tag per product, filling pages left to right and top to bottom.
func PDF(w io.Writer, products []inventory.Product, layout Layout) error {
	if len(products) == 0 {
		return ErrNoProducts
	}

	if layout.Cols <= 0 || layout.Rows <= 0 {
		return fmt.Errorf("invalid layout %dx%d", layout.Cols, layout.Rows)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Arial", "", 9)

	// Core fonts are cp1252; names carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	labelW := (pageWidth - 2*layout.MarginLeft - float64(layout.Cols-1)*layout.GapX) / float64(layout.Cols)
	labelH := (pageHeight - 2*layout.MarginTop - float64(layout.Rows-1)*layout.GapY) / float64(layout.Rows)
	perPage := layout.Cols * layout.Rows

	qrSize := labelH * 0.9
	if qrSize > labelW/2 {
		qrSize = labelW / 2
	}

	for i, p := range products {
		if i%perPage == 0 {
			pdf.AddPage()
		}

		onPage := i % perPage
		x := layout.MarginLeft + float64(onPage%layout.Cols)*(labelW+layout.GapX)
		y := layout.MarginTop + float64(onPage/layout.Cols)*(labelH+layout.GapY)

		png, err := QR(p, qrPixels)
		if err != nil {
			return err
		}

		name := fmt.Sprintf("qr_%d", i)
		opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
		pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(png))
		pdf.ImageOptions(name, x, y+(labelH-qrSize)/2, qrSize, qrSize, false, opts, 0, "")

		textX := x + qrSize + 1
		textW := labelW - qrSize - 1

		pdf.SetXY(textX, y+2)
		pdf.SetFont("Arial", "B", 8)
		pdf.MultiCell(textW, 3.5, tr(p.Name), "", "L", false)

		pdf.SetXY(textX, y+labelH-9)
		pdf.SetFont("Arial", "", 7)
		pdf.CellFormat(textW, 3, p.SKU, "", 0, "L", false, 0, "")

		pdf.SetXY(textX, y+labelH-5)
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(textW, 4, money.Format(p.SalePrice), "", 0, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	return nil
}
