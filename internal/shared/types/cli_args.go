package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	DataDir    string
	SQLitePath string
	ReportName string
	ReportType []string
	Dir        string
	AsOf       string
	TopN       int
}
