// internal/export/pdf.go
package export

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"gotravel/internal/models"
)

// PDF renders the itinerary as a printable document. When mapURL is
// non-empty a QR code linking to the destination map goes on the cover.
func PDF(it *models.Itinerary, mapURL string) ([]byte, error) {
	if it == nil || it.DayCount() == 0 {
		return nil, fmt.Errorf("itinerary has no days")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Itinerary: %s", it.Destination), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, sanitize(fmt.Sprintf("Trip to %s", it.Destination)))
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("%s to %s", it.StartDate, it.EndDate))
	pdf.Ln(8)
	if it.LocalCurrency != "" {
		pdf.Cell(0, 8, fmt.Sprintf("Local currency: %s", it.LocalCurrency))
		pdf.Ln(8)
	}

	if mapURL != "" {
		if png, err := qrcode.Encode(mapURL, qrcode.Medium, 256); err == nil {
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader("map-qr", opts, bytes.NewReader(png))
			pdf.ImageOptions("map-qr", 160, 12, 35, 35, false, opts, 0, "")
			pdf.SetFont("Arial", "I", 8)
			pdf.Text(160, 50, "Scan for map")
		}
	}
	pdf.Ln(4)

	for _, day := range it.Days {
		pdf.SetFont("Arial", "B", 14)
		header := fmt.Sprintf("Day %d", day.Day)
		if day.Date != "" {
			header += " - " + day.Date
		}
		if day.Title != "" {
			header += ": " + day.Title
		}
		pdf.MultiCell(0, 8, sanitize(header), "", "L", false)
		pdf.Ln(1)

		for _, activity := range day.Activities {
			pdf.SetFont("Arial", "B", 11)
			line := activity.Time
			if activity.Location != "" {
				line += " - " + activity.Location
			}
			pdf.MultiCell(0, 6, sanitize(line), "", "L", false)

			pdf.SetFont("Arial", "", 10)
			pdf.MultiCell(0, 5, sanitize(activity.Description), "", "L", false)
			if activity.Address != "" {
				pdf.SetFont("Arial", "I", 9)
				pdf.MultiCell(0, 5, sanitize("Address: "+activity.Address), "", "L", false)
			}
			if activity.CostDisplay != "" {
				pdf.SetFont("Arial", "", 9)
				pdf.MultiCell(0, 5, sanitize("Cost: "+activity.CostDisplay), "", "L", false)
			}
			pdf.Ln(2)
		}
		pdf.Ln(4)
	}

	writeListSection(pdf, "Daily Budget", []string{it.DailyBudget})
	writeListSection(pdf, "Safety Information", it.SafetyInfo)
	writeListSection(pdf, "Wellness", it.WellnessInfo)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

func writeListSection(pdf *gofpdf.Fpdf, title string, items []string) {
	nonEmpty := make([]string, 0, len(items))
	for _, item := range items {
		if item != "" {
			nonEmpty = append(nonEmpty, item)
		}
	}
	if len(nonEmpty) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.MultiCell(0, 8, title, "", "L", false)
	pdf.SetFont("Arial", "", 10)
	for _, item := range nonEmpty {
		pdf.MultiCell(0, 5, sanitize("- "+item), "", "L", false)
	}
	pdf.Ln(4)
}

// sanitize maps text onto the cp1252 glyphs the core fonts carry. Characters
// outside that set degrade to '?', which beats a corrupted page.
func sanitize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r < 0x80 || (r >= 0xA0 && r <= 0xFF) {
			out = append(out, r)
		} else {
			out = append(out, '?')
		}
	}
	return string(out)
}
