package main

import (
	"fmt"
	"os"

	"github.com/diillson/client-insights-go/internal/adapter/driven/config"
	"github.com/diillson/client-insights-go/internal/adapter/driven/dataset"
	"github.com/diillson/client-insights-go/internal/adapter/driven/export"
	"github.com/diillson/client-insights-go/internal/adapter/driving/cli"
	"github.com/diillson/client-insights-go/internal/application/usecase"
	"github.com/diillson/client-insights-go/pkg/console"
	"github.com/diillson/client-insights-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	sources := usecase.DatasetSources{
		CSV:    dataset.NewCSVRepository,
		SQLite: dataset.NewSQLiteRepository,
	}
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	dashboardUseCase := usecase.NewDashboardUseCase(
		sources,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	// Define o caso de uso no aplicativo CLI
	app.SetDashboardUseCase(dashboardUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
