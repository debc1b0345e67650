package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/domain/repository"
)

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// --- JSON ---

// ExportToJSON grava o documento já serializado do relatório.
func (r *ExportRepositoryImpl) ExportToJSON(document []byte, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, document, 0o644); err != nil {
		return "", fmt.Errorf("error writing JSON file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- CSV ---

// ExportTableToCSV grava uma tabela plana com a linha de cabeçalho na ordem declarada.
func (r *ExportRepositoryImpl) ExportTableToCSV(table *entity.FlatTable, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(table.Header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- PDF ---

var (
	headerColor       = [3]int{40, 40, 40}
	headerTextColor   = [3]int{255, 255, 255}
	sectionTitleColor = [3]int{0, 0, 0}
	bodyTextColor     = [3]int{50, 50, 50}
	lineColor         = [3]int{200, 200, 200}
)

// maxPDFRows limita as linhas de cada tabela no PDF; o CSV traz a tabela completa.
const maxPDFRows = 25

// ExportToPDF gera uma página por área do relatório e uma página por tabela exportada.
func (r *ExportRepositoryImpl) ExportToPDF(report *entity.Report, tables []*entity.FlatTable, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	page := 0

	footer := func() {
		page++
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("Generated by Client Insights | %s", r.now().Format("2006-01-02"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", page)), "", 0, "R", false, 0, "")
	}

	drawHeader := func(title string) {
		pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
		pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", title)), "", 1, "L", true, 0, "")
		pdf.Ln(8)
	}

	drawTitle := func(title string) {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(sectionTitleColor[0], sectionTitleColor[1], sectionTitleColor[2])
		pdf.Cell(0, 8, tr(title))
		pdf.Ln(7)

		pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+190, pdf.GetY())
		pdf.Ln(4)
	}

	drawSection := func(title string, content string) {
		if strings.TrimSpace(content) == "" {
			return
		}
		drawTitle(title)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		pdf.MultiCell(190, 5, tr(content), "", "L", false)
		pdf.Ln(6)
	}

	drawTable := func(title string, header []string, rows [][]string) {
		drawTitle(title)
		if len(header) == 0 {
			return
		}
		width := 190.0 / float64(len(header))

		pdf.SetFont("Arial", "B", 8)
		pdf.SetFillColor(240, 240, 240)
		pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
		for _, h := range header {
			pdf.CellFormat(width, 6, tr(fitCell(pdf, h, width)), "B", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 8)
		limit := min(len(rows), maxPDFRows)
		for _, row := range rows[:limit] {
			for _, cell := range row {
				pdf.CellFormat(width, 5, tr(fitCell(pdf, cell, width)), "", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		if len(rows) > limit {
			pdf.CellFormat(0, 5, tr(fmt.Sprintf("... (+%d more)", len(rows)-limit)), "", 1, "L", false, 0, "")
		}
		pdf.Ln(6)
	}

	var drawReport func(r *entity.Report)
	drawReport = func(rep *entity.Report) {
		var scalars strings.Builder
		for _, key := range rep.Keys() {
			section, _ := rep.Get(key)
			switch sec := section.(type) {
			case entity.Value:
				value := sec.Text()
				if sec.IsMissing() {
					value = "N/A"
				}
				scalars.WriteString(fmt.Sprintf("%s: %s\n", humanize(key), value))
			}
		}
		drawSection("Summary", scalars.String())

		for _, key := range rep.Keys() {
			section, _ := rep.Get(key)
			switch sec := section.(type) {
			case *entity.Counts:
				drawSection(humanize(key), formatCounts(sec))
			case *entity.Summary:
				drawSection(humanize(key), formatSummary(sec))
			case *entity.RecordList:
				rows := make([][]string, 0, sec.Len())
				for _, row := range sec.Rows {
					cells := make([]string, len(sec.Columns))
					for i, col := range sec.Columns {
						if v, ok := row.Field(col); ok {
							cells[i] = v.Text()
						}
					}
					rows = append(rows, cells)
				}
				drawTable(humanize(key), sec.Columns, rows)
			case *entity.Report:
				if sec != nil {
					drawReport(sec)
				}
			}
		}
	}

	for _, area := range report.Keys() {
		section, _ := report.Get(area)
		pdf.AddPage()
		drawHeader(humanize(area))
		switch sec := section.(type) {
		case *entity.Report:
			if sec != nil {
				drawReport(sec)
			}
		default:
			single := entity.NewReport().Set(area, section)
			drawReport(single)
		}
		footer()
	}

	for _, table := range tables {
		pdf.AddPage()
		drawHeader(humanize(table.Name))
		drawTable(fmt.Sprintf("%d rows", len(table.Rows)), table.Header, table.Rows)
		footer()
	}

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Funções Auxiliares ---

// generateFilename cria um nome de arquivo único com timestamp e garante que o diretório exista.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// humanize transforma "task_analysis" em "Task Analysis".
func humanize(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func formatCounts(c *entity.Counts) string {
	if c == nil || c.Len() == 0 {
		return "None"
	}
	var b strings.Builder
	for _, k := range c.Keys() {
		b.WriteString(fmt.Sprintf("%s: %d\n", k, c.Get(k)))
	}
	return b.String()
}

func formatSummary(s *entity.Summary) string {
	if s == nil {
		return "No data"
	}
	out := fmt.Sprintf("Count: %d\nMean: %.2f\n", s.Count, s.Mean)
	if s.Std != nil {
		out += fmt.Sprintf("Std: %.2f\n", *s.Std)
	}
	out += fmt.Sprintf("Min: %.2f\n25%%: %.2f\n50%%: %.2f\n75%%: %.2f\nMax: %.2f", s.Min, s.P25, s.P50, s.P75, s.Max)
	return out
}

// fitCell corta o texto para caber na largura da coluna.
func fitCell(pdf *gofpdf.Fpdf, text string, width float64) string {
	if pdf.GetStringWidth(text) <= width-1 {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
