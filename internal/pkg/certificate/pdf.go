package certificate

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/coeptech/unimis/internal/pkg/logger"
)

// Certificate types issued by the student portal.
const (
	TypeBonafide    = "bonafide"
	TypeLibraryCard = "librarycard"
	TypeIDCard      = "idcard"
)

// StudentInfo carries the student fields printed on certificates.
type StudentInfo struct {
	MISID      string
	FullName   string
	Email      string
	CourseName string
}

// Renderer produces certificate PDFs for students.
type Renderer struct {
	institutionName string
}

// NewRenderer creates a certificate renderer.
func NewRenderer(institutionName string) *Renderer {
	return &Renderer{institutionName: institutionName}
}

// Render produces a PDF byte stream for the given certificate type. Unknown
// types still produce a PDF with an "invalid type" page instead of an error,
// matching the portal's contract of always returning a document.
func (r *Renderer) Render(certType string, student StudentInfo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	r.header(pdf)

	switch strings.ToLower(certType) {
	case TypeBonafide:
		r.bonafide(pdf, student)
	case TypeLibraryCard:
		r.libraryCard(pdf, student)
	case TypeIDCard:
		r.idCard(pdf, student)
	default:
		logger.Warn().Str("type", certType).Msg("Unknown certificate type requested")
		r.invalidType(pdf, certType)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render certificate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, r.institutionName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, time.Now().Format("02 January 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(8)
}

func (r *Renderer) bonafide(pdf *gofpdf.Fpdf, s StudentInfo) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "BONAFIDE CERTIFICATE", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 12)
	body := fmt.Sprintf(
		"This is to certify that %s (MIS ID: %s) is a bonafide student of %s, "+
			"currently enrolled in the %s programme. This certificate is issued "+
			"upon the request of the student for whatever legitimate purpose it may serve.",
		s.FullName, s.MISID, r.institutionName, s.CourseName,
	)
	pdf.MultiCell(0, 8, body, "", "L", false)
	pdf.Ln(16)
	pdf.CellFormat(0, 8, "Registrar", "", 1, "R", false, 0, "")
}

func (r *Renderer) libraryCard(pdf *gofpdf.Fpdf, s StudentInfo) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "LIBRARY CARD", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	for _, row := range [][2]string{
		{"Name", s.FullName},
		{"MIS ID", s.MISID},
		{"Course", s.CourseName},
		{"Email", s.Email},
	} {
		pdf.CellFormat(40, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(120, 8, row[1], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Valid for the current academic year. Borrowing limit: 4 books.", "", "L", false)
}

func (r *Renderer) idCard(pdf *gofpdf.Fpdf, s StudentInfo) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "STUDENT IDENTITY CARD", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 8, "Name: "+s.FullName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "MIS ID: "+s.MISID, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Course: "+s.CourseName, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 8, "Email: "+s.Email, "", 1, "L", false, 0, "")

	// QR code carrying the MIS ID, scanned at campus entry points
	png, err := qrcode.Encode(s.MISID, qrcode.Medium, 256)
	if err != nil {
		logger.Error().Err(err).Str("misId", s.MISID).Msg("Failed to encode ID card QR code")
		return
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("idcard-qr", opts, bytes.NewReader(png))
	pdf.ImageOptions("idcard-qr", 150, 60, 40, 40, false, opts, 0, "")
}

func (r *Renderer) invalidType(pdf *gofpdf.Fpdf, certType string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "INVALID CERTIFICATE TYPE", "", 1, "C", false, 0, "")
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 12)
	pdf.MultiCell(0, 8, fmt.Sprintf(
		"The requested certificate type %q is not recognised. "+
			"Supported types are: bonafide, librarycard, idcard.", certType,
	), "", "L", false)
}
