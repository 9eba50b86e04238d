package main

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"pgn4_backend/internal/domain/pgn4"
)

// generatePDF writes the tags as a two column table followed by the notation,
// one turn per line.
func generatePDF(doc *pgn4.PGN4, title, output string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Courier", "B", 12)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)

	pdf.SetFont("Courier", "", 10)
	for _, tag := range doc.Tags {
		pdf.CellFormat(45, 6, tr(tag.Name), "1", 0, "L", false, 0, "")
		pdf.MultiCell(0, 6, tr(tag.Value), "1", "L", false)
	}
	if len(doc.Tags) > 0 {
		pdf.Ln(6)
	}

	for _, turn := range doc.Turns {
		for _, line := range strings.Split(turn.String(), "\n") {
			pdf.MultiCell(0, 4.5, tr(line), "", "L", false)
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Courier", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("%d plies", doc.PlyCount()))

	return pdf.OutputFileAndClose(output)
}
