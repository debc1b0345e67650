package report

import (
	"fmt"
	"strings"

	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/shared/types"
)

// ValidateConfig checks every collection and field name against the known schemas,
// so that typos fail at start-up instead of producing "missing" categories. It also
// rejects section names that would overwrite one another in the report.
func ValidateConfig(cfg types.ReportConfig) error {
	schemas := entity.Schemas()
	configured := make(map[string]bool, len(cfg.Collections))

	for _, cc := range cfg.Collections {
		schema, ok := schemas[cc.Name]
		if !ok || cc.Name == entity.ClientSchema.Name {
			return fmt.Errorf("%w: %q", types.ErrUnknownCollection, cc.Name)
		}
		if configured[cc.Name] {
			return fmt.Errorf("%w: collection %q configured twice", types.ErrDuplicateSection, cc.Name)
		}
		configured[cc.Name] = true

		fields := append([]string{}, cc.Categories...)
		fields = append(fields, cc.ForeignKey, cc.NumericField, cc.RecencyField, cc.DayField)
		if cc.Breakdown != nil {
			fields = append(fields, cc.Breakdown.By, cc.Breakdown.Within)
		}
		for _, f := range fields {
			if f == "" {
				continue
			}
			if !schema.Has(f) {
				return fmt.Errorf("collection %s: %w: %q", cc.Name, types.ErrUnknownField, f)
			}
		}

		if (cc.UpcomingSection != "" || cc.OverdueSection != "") && cc.RecencyField == "" {
			return fmt.Errorf("collection %s: upcoming/overdue sections require a recency_field", cc.Name)
		}
		if cc.Breakdown != nil && (cc.Breakdown.By == "" || cc.Breakdown.Within == "") {
			return fmt.Errorf("collection %s: breakdown requires both by and within", cc.Name)
		}

		if err := uniqueKeys("area of "+cc.Name, areaSectionKeys(cc.Name, &cc)); err != nil {
			return err
		}
	}

	// Coleções sem configuração também ocupam uma área (<nome>_analysis).
	areas := []string{SectionClientInsights, SectionRecentActivities}
	for _, c := range (&entity.Dataset{}).Collections() {
		areas = append(areas, areaName(c.Name, findConfig(cfg, c.Name)))
	}
	if err := uniqueKeys("report", areas); err != nil {
		return err
	}

	tableNames := make([]string, 0, len(cfg.Tables))
	for _, tc := range cfg.Tables {
		hasSection := strings.TrimSpace(tc.Section) != ""
		if tc.Name == "" || hasSection == (tc.Upcoming != "") {
			return fmt.Errorf("table %q: name and exactly one of section or upcoming are required", tc.Name)
		}
		if tc.Upcoming != "" {
			cc := findConfig(cfg, tc.Upcoming)
			if cc == nil || cc.RecencyField == "" {
				return fmt.Errorf("table %s: %w: %q must be configured with a recency_field", tc.Name, types.ErrUnknownCollection, tc.Upcoming)
			}
		}
		tableNames = append(tableNames, tc.Name)
	}
	return uniqueKeys("tables", tableNames)
}

// areaSectionKeys lista as chaves que buildArea gera para a coleção, na mesma ordem.
func areaSectionKeys(name string, cc *types.CollectionConfig) []string {
	keys := []string{"total_" + name}
	for _, field := range cc.Categories {
		keys = append(keys, field+"_distribution")
	}
	if cc.Breakdown != nil {
		keys = append(keys, cc.Breakdown.By+"_breakdown")
	}
	if cc.RecencyField != "" {
		if cc.UpcomingSection != "" {
			keys = append(keys, cc.UpcomingSection)
		}
		if cc.OverdueSection != "" {
			keys = append(keys, cc.OverdueSection)
		}
	}
	if cc.NumericField != "" {
		keys = append(keys, "average_"+cc.NumericField, cc.NumericField+"_summary")
	}
	if cc.DayField != "" {
		keys = append(keys, "daily_average", "busiest_day")
	}
	return keys
}

func uniqueKeys(scope string, keys []string) error {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			return fmt.Errorf("%s: %w: %q", scope, types.ErrDuplicateSection, k)
		}
		seen[k] = true
	}
	return nil
}
