package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/diillson/client-insights-go/internal/application/usecase"
	"github.com/diillson/client-insights-go/internal/shared/types"
	"github.com/diillson/client-insights-go/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd          *cobra.Command
	dashboardUseCase *usecase.DashboardUseCase
	version          string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	// Obtem a versão formatada
	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:          "client-insights",
		Short:        "Client activity insights report",
		Long:         "Aggregates clients, tasks, meetings and communications into an insights report and exports it as JSON, CSV or PDF.",
		Version:      formattedVersion,
		RunE:         app.runCommand,
		SilenceUsage: true,
	}

	rootCmd.SetVersionTemplate(`{{printf "Client Insights version: %s\n" .Version}}`)

	// Adiciona flags de linha de comando
	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("data-dir", "i", "", "Directory with clients.csv, tasks.csv, meetings.csv and communications.csv")
	rootCmd.PersistentFlags().StringP("sqlite", "s", "", "SQLite database with clients, tasks, meetings and communications tables")
	rootCmd.PersistentFlags().StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	rootCmd.PersistentFlags().StringSliceP("report-type", "y", []string{"json"}, "Specify report types: json, csv, pdf")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	rootCmd.PersistentFlags().StringP("as-of", "a", "", "Reference date for upcoming/overdue sections, e.g. 2025-01-31 (default: now)")
	rootCmd.PersistentFlags().IntP("top-n", "t", 0, "Number of records in recent and upcoming lists (default: 5)")

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs parses command-line arguments into a CLIArgs struct.
func (app *CLIApp) parseArgs() (*types.CLIArgs, error) {
	flags := app.rootCmd.Flags()
	configFile, _ := flags.GetString("config-file")
	dataDir, _ := flags.GetString("data-dir")
	sqlitePath, _ := flags.GetString("sqlite")
	reportName, _ := flags.GetString("report-name")
	reportType, _ := flags.GetStringSlice("report-type")
	dir, _ := flags.GetString("dir")
	asOf, _ := flags.GetString("as-of")
	topN, _ := flags.GetInt("top-n")

	// O valor padrão de report-type não deve sobrescrever o arquivo de configuração
	if !flags.Changed("report-type") && configFile != "" {
		reportType = nil
	}

	// Converte para caminho absoluto
	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	args := &types.CLIArgs{
		ConfigFile: configFile,
		DataDir:    dataDir,
		SQLitePath: sqlitePath,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		AsOf:       asOf,
		TopN:       topN,
	}

	return args, nil
}

// runCommand é o ponto de entrada principal para o comando CLI.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	// Exibe o banner de boas-vindas
	displayWelcomeBanner()

	// Verifica a versão mais recente disponível
	go version.CheckLatestVersion(app.version)

	// Analisa os argumentos da linha de comando
	cliArgs, err := app.parseArgs()
	if err != nil {
		return err
	}

	// Executa o dashboard
	ctx := context.Background()
	err = app.dashboardUseCase.RunDashboard(ctx, cliArgs)
	if usecase.IsUsageError(err) {
		_ = cmd.Usage()
	}
	return err
}

// SetDashboardUseCase sets the dashboard use case for the CLI app.
func (app *CLIApp) SetDashboardUseCase(useCase *usecase.DashboardUseCase) {
	app.dashboardUseCase = useCase
}
