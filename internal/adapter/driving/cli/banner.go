package cli

import (
	"fmt"

	"github.com/diillson/client-insights-go/pkg/console"
	"github.com/diillson/client-insights-go/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
   _____ _ _            _     _____           _       _     _
  / ____| (_)          | |   |_   _|         (_)     | |   | |
 | |    | |_  ___ _ __ | |_    | |  _ __  ___ _  __ _| |__ | |_ ___
 | |    | | |/ _ \ '_ \| __|   | | | '_ \/ __| |/ _` + "`" + ` | '_ \| __/ __|
 | |____| | |  __/ | | | |_   _| |_| | | \__ \ | (_| | | | | |_\__ \
  \_____|_|_|\___|_| |_|\__| |_____|_| |_|___/_|\__, |_| |_|\__|___/
                                                 __/ |
                                                |___/
        `
	fmt.Println(console.BrightCyan(banner))

	// Obtem a string formatada da versão através do pacote version
	formattedVersion := version.FormatVersion()
	fmt.Println(console.BoldBlue(fmt.Sprintf("Client Insights CLI (v%s)", formattedVersion)))
}
