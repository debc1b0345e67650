package report

import (
	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/shared/types"
)

// DefaultTopN é o tamanho das listas "recentes" e "próximas".
const DefaultTopN = 5

// DefaultConfig reproduz o layout de referência do dashboard de clientes.
func DefaultConfig() types.ReportConfig {
	return types.ReportConfig{
		TopN: DefaultTopN,
		Collections: []types.CollectionConfig{
			{
				Name:            entity.TaskSchema.Name,
				Area:            "task_analysis",
				ForeignKey:      entity.FieldClientID,
				Categories:      []string{entity.FieldStatus, entity.FieldPriority},
				RecencyField:    entity.FieldDueDate,
				UpcomingSection: "upcoming_deadlines",
				OverdueSection:  "overdue_tasks",
				Breakdown:       &types.BreakdownConfig{By: entity.FieldStatus, Within: entity.FieldPriority},
			},
			{
				Name:            entity.MeetingSchema.Name,
				Area:            "meeting_analysis",
				ForeignKey:      entity.FieldClientID,
				Categories:      []string{entity.FieldType, entity.FieldStatus},
				NumericField:    entity.FieldDuration,
				RecencyField:    entity.FieldDate,
				UpcomingSection: "upcoming_meetings",
			},
			{
				Name:         entity.CommunicationSchema.Name,
				Area:         "communication_analysis",
				ForeignKey:   entity.FieldClientID,
				Categories:   []string{entity.FieldType, entity.FieldDirection},
				RecencyField: entity.FieldDate,
				DayField:     entity.FieldDay,
			},
		},
		Tables: []types.TableConfig{
			{Name: "task_status_report", Section: "task_analysis.status_breakdown"},
			{Name: "client_activity_summary", Section: "client_insights.client_activity"},
			{
				Name:     "upcoming_meetings",
				Upcoming: entity.MeetingSchema.Name,
				Columns:  []string{entity.FieldID, entity.FieldClientID, entity.FieldType, entity.FieldDate, entity.FieldDuration, entity.FieldStatus},
			},
		},
	}
}

// withDefaults preenche valores omitidos na configuração.
func withDefaults(cfg types.ReportConfig) types.ReportConfig {
	if cfg.TopN <= 0 {
		cfg.TopN = DefaultTopN
	}
	return cfg
}
