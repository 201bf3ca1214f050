package export

import (
	_ "embed"
	"io"

	"github.com/go-pdf/fpdf"

	"offboard-checklist/internal/models"
)

// DejaVu covers Latin Extended, so names like "Nguyễn Văn Đức" render intact.
const pdfFont = "DejaVu"

var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	fontRegular []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	fontBold []byte
)

// pdfWidths are the item table column widths in mm (landscape A4).
var pdfWidths = []float64{45, 95, 30, 28, 79}

func WritePDF(w io.Writer, d *models.TicketDetail) error {
	return writePDF(w, d, true)
}

func writePDF(w io.Writer, d *models.TicketDetail, compress bool) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.AddUTF8FontFromBytes(pdfFont, "", fontRegular)
	pdf.AddUTF8FontFromBytes(pdfFont, "B", fontBold)
	pdf.AddPage()

	rows := Rows(d)

	pdf.SetFont(pdfFont, "B", 16)
	pdf.Cell(0, 10, rows[0][0])
	pdf.Ln(12)

	for _, row := range rows[2 : HeaderRows-2] {
		pdf.SetFont(pdfFont, "B", 11)
		pdf.CellFormat(50, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont(pdfFont, "", 11)
		pdf.CellFormat(0, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	pdf.SetFont(pdfFont, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, title := range ItemColumns {
		pdf.CellFormat(pdfWidths[i], 8, title, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFont, "", 9)
	for _, row := range rows[HeaderRows:] {
		for i, v := range row {
			pdf.CellFormat(pdfWidths[i], 7, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}
