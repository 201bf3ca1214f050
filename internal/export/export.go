// Package export renders a ticket and its checklist as a downloadable
// document.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"offboard-checklist/internal/models"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatPDF:
		return FormatPDF, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

const (
	SheetName = "Offboard checklist"

	// HeaderRows is the size of the fixed block above the item rows.
	HeaderRows = 12

	displayDate = "02/01/2006"
)

// ItemColumns are the column titles of the item table.
var ItemColumns = []string{"Category", "Task", "Status", "Completed", "Evidence / Note"}

type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Render builds the document for d in the given format.
func Render(d *models.TicketDetail, f Format) (*Document, error) {
	var buf bytes.Buffer
	doc := &Document{Filename: Filename(d, f)}
	switch f {
	case FormatXLSX:
		doc.ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		if err := WriteXLSX(&buf, d); err != nil {
			return nil, err
		}
	case FormatPDF:
		doc.ContentType = "application/pdf"
		if err := WritePDF(&buf, d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported export format %q", f)
	}
	doc.Body = buf.Bytes()
	return doc, nil
}

func Filename(d *models.TicketDetail, f Format) string {
	return fmt.Sprintf("%s - %s %s.%s", SheetName, d.EmployeeName, d.EmployeeID, f)
}

// Rows lays out the sheet: a header block of HeaderRows rows followed by one
// row per checklist item.
func Rows(d *models.TicketDetail) [][]string {
	rows := make([][]string, 0, HeaderRows+len(d.Checklist))
	rows = append(rows,
		[]string{SheetName},
		[]string{},
		[]string{"Employee name", d.EmployeeName},
		[]string{"Employee ID", d.EmployeeID},
		[]string{"Email", d.Email},
		[]string{"Position", str(d.Position)},
		[]string{"Manager", str(d.Manager)},
		[]string{"Last working day", formatDate(d.LastWorkingDay)},
		[]string{"Status", string(d.Status)},
		[]string{"Completed at", formatTime(d.CompletedAt)},
		[]string{},
		ItemColumns,
	)
	for _, it := range d.Checklist {
		rows = append(rows, []string{
			it.Category,
			it.Task,
			string(it.Status),
			formatDate(it.CompletedAt),
			str(it.EvidenceNote),
		})
	}
	return rows
}

func str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(d *models.Date) string {
	if d == nil {
		return ""
	}
	return d.Format(displayDate)
}

// formatTime prints timestamps in UTC so the export does not depend on the
// zone the store handed back.
func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(displayDate)
}
