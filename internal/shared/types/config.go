package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	DataDir    string       `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	SQLitePath string       `json:"sqlite" yaml:"sqlite" toml:"sqlite"`
	ReportName string       `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string     `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string       `json:"dir" yaml:"dir" toml:"dir"`
	AsOf       string       `json:"as_of" yaml:"as_of" toml:"as_of"`
	Report     ReportConfig `json:"report" yaml:"report" toml:"report"`
}

// ReportConfig descreve quais seções são montadas para cada coleção.
type ReportConfig struct {
	// TopN limita as seções "recentes" e "próximas" (5 por padrão).
	TopN        int                `json:"top_n" yaml:"top_n" toml:"top_n"`
	Collections []CollectionConfig `json:"collections" yaml:"collections" toml:"collections"`
	Tables      []TableConfig      `json:"tables" yaml:"tables" toml:"tables"`
}

// CollectionConfig declares the fields used to aggregate one collection.
// Any empty field disables the sections that depend on it.
type CollectionConfig struct {
	// Name é o nome da coleção no dataset (tasks, meetings, communications).
	Name string `json:"name" yaml:"name" toml:"name"`
	// Area é a chave da seção no relatório (ex.: task_analysis).
	Area            string           `json:"area" yaml:"area" toml:"area"`
	ForeignKey      string           `json:"foreign_key" yaml:"foreign_key" toml:"foreign_key"`
	Categories      []string         `json:"categories" yaml:"categories" toml:"categories"`
	NumericField    string           `json:"numeric_field" yaml:"numeric_field" toml:"numeric_field"`
	RecencyField    string           `json:"recency_field" yaml:"recency_field" toml:"recency_field"`
	UpcomingSection string           `json:"upcoming_section" yaml:"upcoming_section" toml:"upcoming_section"`
	OverdueSection  string           `json:"overdue_section" yaml:"overdue_section" toml:"overdue_section"`
	DayField        string           `json:"day_field" yaml:"day_field" toml:"day_field"`
	Breakdown       *BreakdownConfig `json:"breakdown,omitempty" yaml:"breakdown,omitempty" toml:"breakdown,omitempty"`
}

// BreakdownConfig gera uma linha por valor de By, com a distribuição de Within.
type BreakdownConfig struct {
	By     string `json:"by" yaml:"by" toml:"by"`
	Within string `json:"within" yaml:"within" toml:"within"`
}

// TableConfig maps a tabular report section to a flat-file export.
// Upcoming, when set, names a collection whose every record dated on or after as_of
// becomes the table, instead of a report section.
type TableConfig struct {
	Name     string   `json:"name" yaml:"name" toml:"name"`
	Section  string   `json:"section" yaml:"section" toml:"section"`
	Upcoming string   `json:"upcoming" yaml:"upcoming" toml:"upcoming"`
	Columns  []string `json:"columns" yaml:"columns" toml:"columns"`
}
