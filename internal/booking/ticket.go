package booking

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phpdave11/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/leolovestravel/vietnamtravel/internal/models"
	"github.com/leolovestravel/vietnamtravel/internal/timezone"
	"github.com/leolovestravel/vietnamtravel/pkg/currency"
)

// WriteTicket renders a one-page PDF confirmation with a QR code of the
// booking reference.
func WriteTicket(w io.Writer, b models.Booking, siteURL string) error {
	qr, err := qrcode.Encode(siteURL+"/booking-confirmation?ref="+b.Reference, qrcode.Medium, 256)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Booking "+b.Reference, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.Cell(0, 12, "Leo Loves Travel - Booking Confirmation")
	pdf.Ln(16)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Reference", b.Reference},
		{"Tour", b.TourName},
		{"Traveller", b.FullName},
		{"Email", b.Email},
		{"Phone", b.Phone},
		{"Travel date", travelDate(b.TravelDate)},
		{"Travellers", fmt.Sprintf("%d", b.Travelers)},
		{"Price per person", currency.FormatUSD(b.UnitPrice)},
		{"Total", currency.FormatUSD(b.Total)},
		{"Status", string(b.Status)},
		{"Booked at", timezone.FormatDateTime(b.CreatedAt)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(50, 8, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qr))
	pdf.ImageOptions("qr", 140, 30, 50, 50, false, opts, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, tr("Our team will contact you within 24 hours to confirm availability and payment details."), "", "L", false)

	return pdf.Output(w)
}

func travelDate(s string) string {
	d, err := timezone.ParseDate(s)
	if err != nil {
		return s
	}
	return timezone.FormatDate(d)
}
