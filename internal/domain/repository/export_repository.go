package repository

import (
	"github.com/diillson/client-insights-go/internal/domain/entity"
)

// ExportRepository writes report outputs to disk and returns the absolute path written.
type ExportRepository interface {
	ExportToJSON(document []byte, filename string, outputDir string) (string, error)
	ExportTableToCSV(table *entity.FlatTable, filename string, outputDir string) (string, error)
	ExportToPDF(report *entity.Report, tables []*entity.FlatTable, filename string, outputDir string) (string, error)
}
