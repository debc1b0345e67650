package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diillson/client-insights-go/internal/application/report"
	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/domain/repository"
	"github.com/diillson/client-insights-go/internal/shared/types"
)

// DatasetSources abre o repositório de dados escolhido pela configuração.
type DatasetSources struct {
	CSV    func(dir string) repository.DatasetRepository
	SQLite func(path string) repository.DatasetRepository
}

// DashboardUseCase handles the main dashboard functionality.
type DashboardUseCase struct {
	sources    DatasetSources
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewDashboardUseCase creates a new dashboard use case.
func NewDashboardUseCase(
	sources DatasetSources,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	console types.ConsoleInterface,
) *DashboardUseCase {
	return &DashboardUseCase{
		sources:    sources,
		exportRepo: exportRepo,
		configRepo: configRepo,
		console:    console,
		now:        time.Now,
	}
}

// ResolveConfig carrega o arquivo de configuração (se houver) e aplica as flags por cima.
// Sem coleções ou tabelas configuradas, usa o layout padrão do relatório.
func (uc *DashboardUseCase) ResolveConfig(args *types.CLIArgs) (*types.Config, error) {
	cfg := &types.Config{}
	if args.ConfigFile != "" {
		loaded, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
		cfg = loaded
	}

	if args.DataDir != "" {
		cfg.DataDir = args.DataDir
	}
	if args.SQLitePath != "" {
		cfg.SQLitePath = args.SQLitePath
	}
	if args.ReportName != "" {
		cfg.ReportName = args.ReportName
	}
	if len(args.ReportType) > 0 {
		cfg.ReportType = args.ReportType
	}
	if args.Dir != "" {
		cfg.Dir = args.Dir
	}
	if args.AsOf != "" {
		cfg.AsOf = args.AsOf
	}
	if args.TopN > 0 {
		cfg.Report.TopN = args.TopN
	}

	// As tabelas padrão apontam para seções do layout padrão; só valem junto com ele.
	defaults := report.DefaultConfig()
	if len(cfg.Report.Collections) == 0 {
		cfg.Report.Collections = defaults.Collections
		if len(cfg.Report.Tables) == 0 {
			cfg.Report.Tables = defaults.Tables
		}
	}
	if cfg.Report.TopN <= 0 {
		cfg.Report.TopN = defaults.TopN
	}

	if err := report.ValidateConfig(cfg.Report); err != nil {
		return nil, fmt.Errorf("invalid report configuration: %w", err)
	}
	return cfg, nil
}

// datasetRepository escolhe a fonte de dados; o SQLite tem precedência sobre o diretório CSV.
func (uc *DashboardUseCase) datasetRepository(cfg *types.Config) (repository.DatasetRepository, error) {
	switch {
	case cfg.SQLitePath != "" && uc.sources.SQLite != nil:
		return uc.sources.SQLite(cfg.SQLitePath), nil
	case cfg.DataDir != "" && uc.sources.CSV != nil:
		return uc.sources.CSV(cfg.DataDir), nil
	default:
		return nil, types.ErrNoDataSource
	}
}

// asOf interpreta a data de referência; vazia significa "agora".
func (uc *DashboardUseCase) asOf(value string) (time.Time, error) {
	if value == "" {
		return uc.now(), nil
	}
	t, ok := entity.ParseDate(value)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid --as-of date %q (expected YYYY-MM-DD or RFC3339)", value)
	}
	return t, nil
}

// RunDashboard executa o fluxo completo: carrega os dados, monta o relatório,
// exibe as métricas principais e exporta os formatos pedidos.
func (uc *DashboardUseCase) RunDashboard(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.ResolveConfig(args)
	if err != nil {
		return err
	}

	asOf, err := uc.asOf(cfg.AsOf)
	if err != nil {
		return err
	}

	datasetRepo, err := uc.datasetRepository(cfg)
	if err != nil {
		return err
	}

	status := uc.console.Status(fmt.Sprintf("Loading data from %s...", datasetRepo.Describe()))

	ds, err := datasetRepo.LoadDataset(ctx)
	if err != nil {
		status.Stop()
		return fmt.Errorf("error loading dataset: %w", err)
	}

	status.Update("Building report...")
	rep, err := report.Build(ds, cfg.Report, asOf)
	if err != nil {
		status.Stop()
		return err
	}

	var tables []*entity.FlatTable
	if cfg.ReportName != "" && needsTables(cfg.ReportType) {
		status.Update("Extracting tables...")
		tables, err = report.Tables(rep, ds, cfg.Report, asOf)
		if err != nil {
			status.Stop()
			return err
		}
	}
	status.Stop()

	uc.displayReport(rep, asOf)

	if cfg.ReportName != "" {
		uc.exportReport(rep, tables, cfg)
	}

	return nil
}

// needsTables indica se algum formato pedido consome as tabelas planas.
func needsTables(reportTypes []string) bool {
	for _, t := range reportTypes {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "csv", "pdf":
			return true
		}
	}
	return false
}

// exportReport grava cada formato pedido; falhas em um formato não impedem os demais.
func (uc *DashboardUseCase) exportReport(rep *entity.Report, tables []*entity.FlatTable, cfg *types.Config) {
	for _, reportType := range cfg.ReportType {
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "json":
			document, err := report.ExportJSON(rep)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
				continue
			}
			jsonPath, err := uc.exportRepo.ExportToJSON(document, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to JSON: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to JSON: %s", jsonPath)
			}
		case "csv":
			for _, table := range tables {
				csvPath, err := uc.exportRepo.ExportTableToCSV(table, cfg.ReportName+"_"+table.Name, cfg.Dir)
				if err != nil {
					uc.console.LogError("Failed to export %s to CSV: %s", table.Name, err)
				} else {
					uc.console.LogSuccess("Successfully exported %s to CSV: %s", table.Name, csvPath)
				}
			}
		case "pdf":
			pdfPath, err := uc.exportRepo.ExportToPDF(rep, tables, cfg.ReportName, cfg.Dir)
			if err != nil {
				uc.console.LogError("Failed to export to PDF: %s", err)
			} else {
				uc.console.LogSuccess("Successfully exported to PDF: %s", pdfPath)
			}
		default:
			uc.console.LogWarning("%s: %q", types.ErrUnsupportedFormat, reportType)
		}
	}
}

// displayReport mostra uma tabela de métricas por área e as distribuições em barras.
func (uc *DashboardUseCase) displayReport(rep *entity.Report, asOf time.Time) {
	uc.console.LogInfo("Report as of %s", asOf.Format("2006-01-02"))

	table := uc.console.CreateTable()
	table.AddColumn("Area")
	table.AddColumn("Metric")
	table.AddColumn("Value")

	for _, area := range rep.Keys() {
		section, _ := rep.Get(area)
		sub, ok := section.(*entity.Report)
		if !ok || sub == nil {
			continue
		}
		for _, key := range sub.Keys() {
			s, _ := sub.Get(key)
			if v, ok := s.(entity.Value); ok {
				table.AddRow(area, key, displayValue(v))
			}
		}
	}
	uc.console.Print(table.Render())

	for _, area := range rep.Keys() {
		section, _ := rep.Get(area)
		sub, ok := section.(*entity.Report)
		if !ok || sub == nil {
			continue
		}
		for _, key := range sub.Keys() {
			s, _ := sub.Get(key)
			counts, ok := s.(*entity.Counts)
			if !ok || counts == nil {
				continue
			}
			uc.console.DisplayDistributionBars(area+" / "+key, categoryCounts(counts))
		}
	}
}

func displayValue(v entity.Value) string {
	if v.IsMissing() {
		return "N/A"
	}
	if n, ok := v.AsNumber(); ok && v.Kind() == entity.KindNumber {
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%.2f", n)
	}
	return v.Text()
}

func categoryCounts(c *entity.Counts) []types.CategoryCount {
	out := make([]types.CategoryCount, 0, c.Len())
	for _, k := range c.Keys() {
		out = append(out, types.CategoryCount{Name: k, Count: c.Get(k)})
	}
	return out
}

// IsUsageError indica erros causados pela entrada do usuário, não por falhas de I/O.
func IsUsageError(err error) bool {
	return errors.Is(err, types.ErrNoDataSource) ||
		errors.Is(err, types.ErrUnknownField) ||
		errors.Is(err, types.ErrUnknownCollection) ||
		errors.Is(err, types.ErrDuplicateSection)
}
