package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ReceiptGenerator is an interface so services can be tested without writing
// files.
type ReceiptGenerator interface {
	GenerateReceipt(data ReceiptData) (string, error)
}

type ReceiptData struct {
	Reference string
	DonorName string
	Amount    int64
	CreatedAt time.Time
	Filename  string // base name only; generated from the reference if empty
}

type ReceiptWriter struct {
	RootDir  string // e.g. "./files"
	FontPath string // TTF with full latin accents, e.g. "assets/fonts/DejaVuSans.ttf"
	fontName string
}

func NewReceiptWriter(rootDir, fontPath string) *ReceiptWriter {
	return &ReceiptWriter{
		RootDir:  filepath.Clean(rootDir),
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReceiptWriter) GenerateReceipt(data ReceiptData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("receipt_%s.pdf", data.Reference)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	donor := data.DonorName
	if donor == "" {
		donor = "Donateur anonyme"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Reçu de don %s", data.Reference), false)
	pdf.SetAuthor("Afri Soutien", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addUTF8Font(pdf)
	pdf.AddPage()

	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "REÇU DE DON", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("Référence %s  —  %s", data.Reference, data.CreatedAt.Format("02/01/2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	pdf.Ln(3)

	g.sectionTitle(pdf, "Détails du don")
	g.kvLine(pdf, "Donateur", donor)
	g.kvLine(pdf, "Montant", fmt.Sprintf("%d FCFA", data.Amount))
	g.kvLine(pdf, "Date", data.CreatedAt.Format("02/01/2006"))
	pdf.Ln(2)
	g.hr(pdf)

	pdf.SetFont(g.fontName, "", 11)
	note := "Afri Soutien certifie avoir reçu le don décrit ci-dessus. " +
		"Ce reçu est délivré à titre de confirmation et ne constitue pas un document fiscal."
	pdf.MultiCell(0, 6, note, "", "L", false)
	pdf.Ln(2)

	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(g.fontName, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb} — Afri Soutien", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

func (g *ReceiptWriter) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(g.fontName, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
}

func (g *ReceiptWriter) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *ReceiptWriter) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}

func (g *ReceiptWriter) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // no path traversal
	return filepath.Join(g.RootDir, filename), nil
}

func (g *ReceiptWriter) addUTF8Font(pdf *gofpdf.Fpdf) {
	pdf.AddUTF8Font(g.fontName, "", g.FontPath)
	pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
}
