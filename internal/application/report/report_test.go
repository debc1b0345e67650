package report

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/shared/types"
)

var asOf = time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

func day(d int, hour int) time.Time {
	return time.Date(2025, 1, d, hour, 0, 0, 0, time.UTC)
}

func minutes(m float64) *float64 { return &m }

func fixtureDataset() *entity.Dataset {
	return &entity.Dataset{
		Clients: []entity.Client{
			{ID: "c1", Name: "Vance and Sons"},
			{ID: "c2", Name: "Cooper-Smith"},
			{ID: "c3", Name: "Perry PLC"},
		},
		Tasks: []entity.Task{
			{ID: "1", ClientID: "c1", Name: "Contract Review", Status: "Done", Priority: "High", DueDate: day(1, 0)},
			{ID: "2", ClientID: "c1", Name: "Budget Review", Status: "Pending", Priority: "Low", DueDate: day(4, 0)},
			{ID: "3", ClientID: "c2", Name: "Documentation", Status: "Done", Priority: "Low", DueDate: day(5, 0)},
		},
		Meetings: []entity.Meeting{
			{ID: "1", ClientID: "c2", Type: "Virtual", Date: day(2, 0), Duration: minutes(30), Status: "Completed"},
			{ID: "2", ClientID: "c2", Type: "Phone Call", Date: day(6, 0), Duration: minutes(90), Status: "Scheduled"},
			{ID: "3", ClientID: "c9", Type: "Virtual", Date: day(3, 0), Status: "Scheduled"},
		},
		Communications: []entity.Communication{
			{ID: "1", ClientID: "c1", Type: "Email", Date: day(1, 9), Direction: "Incoming"},
			{ID: "2", ClientID: "c3", Type: "Phone", Date: day(1, 15), Direction: "Outgoing"},
			{ID: "3", ClientID: "c3", Type: "Email", Date: day(2, 10), Direction: "Outgoing"},
		},
	}
}

func buildFixture(t *testing.T) *entity.Report {
	t.Helper()
	r, err := Build(fixtureDataset(), DefaultConfig(), asOf)
	require.NoError(t, err)
	return r
}

func lookup[T entity.Section](t *testing.T, r *entity.Report, path string) T {
	t.Helper()
	s, ok := r.Lookup(SplitPath(path)...)
	require.True(t, ok, "section %s", path)
	v, ok := s.(T)
	require.True(t, ok, "section %s has type %T", path, s)
	return v
}

func number(t *testing.T, r *entity.Report, path string) float64 {
	t.Helper()
	n, ok := lookup[entity.Value](t, r, path).AsNumber()
	require.True(t, ok, "section %s is not numeric", path)
	return n
}

func TestBuild_TopLevelOrder(t *testing.T) {
	r := buildFixture(t)
	assert.Equal(t, []string{
		"client_insights", "task_analysis", "meeting_analysis", "communication_analysis", "recent_activities",
	}, r.Keys())
}

func TestBuild_ClientInsights(t *testing.T) {
	r := buildFixture(t)

	assert.Equal(t, 3.0, number(t, r, "client_insights.total_clients"))

	tasksPerClient := lookup[*entity.Summary](t, r, "client_insights.client_distribution.tasks_per_client")
	require.NotNil(t, tasksPerClient)
	assert.Equal(t, 3, tasksPerClient.Count)
	assert.InDelta(t, 1.0, tasksPerClient.Mean, 1e-9)

	activity := lookup[*entity.RecordList](t, r, "client_insights.client_activity")
	assert.Equal(t, []string{"client_id", "client_name", "total_tasks", "total_meetings", "total_communications"}, activity.Columns)
	require.Len(t, activity.Rows, 3)

	// c9 não existe: a reunião dele não aparece em nenhuma linha
	totals := map[string][3]string{}
	for _, row := range activity.Rows {
		id, _ := row.Field("client_id")
		tk, _ := row.Field("total_tasks")
		mt, _ := row.Field("total_meetings")
		cm, _ := row.Field("total_communications")
		totals[id.Text()] = [3]string{tk.Text(), mt.Text(), cm.Text()}
	}
	assert.Equal(t, map[string][3]string{
		"c1": {"2", "0", "1"},
		"c2": {"1", "2", "0"},
		"c3": {"0", "0", "2"},
	}, totals)
}

func TestBuild_TaskAnalysis(t *testing.T) {
	r := buildFixture(t)

	assert.Equal(t, 3.0, number(t, r, "task_analysis.total_tasks"))
	assert.Equal(t, map[string]int{"Done": 2, "Pending": 1}, lookup[*entity.Counts](t, r, "task_analysis.status_distribution").Map())
	assert.Equal(t, map[string]int{"High": 1, "Low": 2}, lookup[*entity.Counts](t, r, "task_analysis.priority_distribution").Map())
	assert.Equal(t, 1.0, number(t, r, "task_analysis.overdue_tasks"))

	upcoming := lookup[*entity.RecordList](t, r, "task_analysis.upcoming_deadlines")
	require.Len(t, upcoming.Rows, 2)
	first, _ := upcoming.Rows[0].Field(entity.FieldID)
	assert.Equal(t, "2", first.Text())

	breakdown := lookup[*entity.RecordList](t, r, "task_analysis.status_breakdown")
	assert.Equal(t, []string{"status", "count", "priority_distribution"}, breakdown.Columns)
	require.Len(t, breakdown.Rows, 2)
	dist, _ := breakdown.Rows[0].Field("priority_distribution")
	assert.Equal(t, "High=1; Low=1", dist.Text())
}

func TestBuild_MeetingAnalysis(t *testing.T) {
	r := buildFixture(t)

	assert.Equal(t, 60.0, number(t, r, "meeting_analysis.average_duration"))
	summary := lookup[*entity.Summary](t, r, "meeting_analysis.duration_summary")
	require.NotNil(t, summary)
	assert.Equal(t, 2, summary.Count)

	upcoming := lookup[*entity.RecordList](t, r, "meeting_analysis.upcoming_meetings")
	require.Len(t, upcoming.Rows, 2)
	id, _ := upcoming.Rows[0].Field(entity.FieldID)
	assert.Equal(t, "3", id.Text())
}

func TestBuild_CommunicationAnalysis(t *testing.T) {
	r := buildFixture(t)

	assert.Equal(t, 1.5, number(t, r, "communication_analysis.daily_average"))
	busiest := lookup[entity.Value](t, r, "communication_analysis.busiest_day")
	assert.Equal(t, "2025-01-01", busiest.Text())
	assert.Equal(t, []string{"Email", "Phone"}, lookup[*entity.Counts](t, r, "communication_analysis.type_distribution").Keys())
}

func TestBuild_RecentActivities(t *testing.T) {
	r := buildFixture(t)

	recent := lookup[*entity.Report](t, r, "recent_activities")
	assert.Equal(t, []string{"recent_tasks", "recent_meetings", "recent_communications"}, recent.Keys())

	tasks := lookup[*entity.RecordList](t, r, "recent_activities.recent_tasks")
	ids := []string{}
	for _, row := range tasks.Rows {
		v, _ := row.Field(entity.FieldID)
		ids = append(ids, v.Text())
	}
	assert.Equal(t, []string{"3", "2", "1"}, ids)
	assert.NotContains(t, tasks.Columns, entity.FieldDay)
}

func TestBuild_TopNLimit(t *testing.T) {
	ds := fixtureDataset()
	for i := 0; i < 10; i++ {
		ds.Communications = append(ds.Communications, entity.Communication{ID: "x", ClientID: "c1", Date: day(20, i)})
	}
	cfg := DefaultConfig()

	r, err := Build(ds, cfg, asOf)
	require.NoError(t, err)
	assert.Len(t, lookup[*entity.RecordList](t, r, "recent_activities.recent_communications").Rows, 5)

	cfg.TopN = 2
	r, err = Build(ds, cfg, asOf)
	require.NoError(t, err)
	assert.Len(t, lookup[*entity.RecordList](t, r, "recent_activities.recent_communications").Rows, 2)
}

func TestBuild_EmptyDataset(t *testing.T) {
	r, err := Build(&entity.Dataset{}, DefaultConfig(), asOf)
	require.NoError(t, err)

	assert.Equal(t, 0.0, number(t, r, "task_analysis.total_tasks"))
	assert.Empty(t, lookup[*entity.Counts](t, r, "task_analysis.status_distribution").Keys())
	assert.True(t, lookup[entity.Value](t, r, "meeting_analysis.average_duration").IsMissing())
	assert.Nil(t, lookup[*entity.Summary](t, r, "meeting_analysis.duration_summary"))
	assert.True(t, lookup[entity.Value](t, r, "communication_analysis.busiest_day").IsMissing())
	assert.Empty(t, lookup[*entity.RecordList](t, r, "recent_activities.recent_tasks").Rows)
	assert.Nil(t, lookup[*entity.Summary](t, r, "client_insights.client_distribution.tasks_per_client"))

	data, err := ExportJSON(r)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"average_duration": null`)
	assert.Contains(t, string(data), `"recent_tasks": []`)
}

func TestBuild_MissingConfigOmitsOptionalSections(t *testing.T) {
	cfg := types.ReportConfig{
		Collections: []types.CollectionConfig{{Name: entity.MeetingSchema.Name}},
	}

	r, err := Build(fixtureDataset(), cfg, asOf)
	require.NoError(t, err)

	assert.Equal(t, []string{"client_insights", "tasks_analysis", "meetings_analysis", "communications_analysis"}, r.Keys())
	meetings := lookup[*entity.Report](t, r, "meetings_analysis")
	assert.Equal(t, []string{"total_meetings"}, meetings.Keys())
	insights := lookup[*entity.Report](t, r, "client_insights")
	assert.Equal(t, []string{"total_clients"}, insights.Keys())
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	ds := fixtureDataset()
	_, err := Build(ds, DefaultConfig(), asOf)
	require.NoError(t, err)
	assert.Equal(t, fixtureDataset(), ds)
}

func TestValidateConfig(t *testing.T) {
	require.NoError(t, ValidateConfig(DefaultConfig()))

	cfg := DefaultConfig()
	cfg.Collections[0].Categories = []string{"stauts"}
	err := ValidateConfig(cfg)
	assert.True(t, errors.Is(err, types.ErrUnknownField))
	assert.Contains(t, err.Error(), "stauts")

	cfg = DefaultConfig()
	cfg.Collections = append(cfg.Collections, types.CollectionConfig{Name: "invoices"})
	assert.ErrorIs(t, ValidateConfig(cfg), types.ErrUnknownCollection)

	cfg = DefaultConfig()
	cfg.Collections[1].RecencyField = ""
	assert.Error(t, ValidateConfig(cfg))

	_, err = Build(fixtureDataset(), types.ReportConfig{
		Collections: []types.CollectionConfig{{Name: "tasks", NumericField: "durration"}},
	}, asOf)
	assert.ErrorIs(t, err, types.ErrUnknownField)
}

func TestExportJSON_KeyOrderAndDates(t *testing.T) {
	data, err := ExportJSON(buildFixture(t))
	require.NoError(t, err)

	text := string(data)
	order := []string{`"client_insights"`, `"task_analysis"`, `"meeting_analysis"`, `"communication_analysis"`, `"recent_activities"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		require.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
	assert.Contains(t, text, `"due_date": "2025-01-05T00:00:00Z"`)
	assert.Contains(t, text, `"status_distribution": {
            "Done": 2,
            "Pending": 1
        }`)
}

func TestParseJSON_RoundTrip(t *testing.T) {
	r := buildFixture(t)
	data, err := ExportJSON(r)
	require.NoError(t, err)

	doc, err := ParseJSON(data)
	require.NoError(t, err)
	if diff := cmp.Diff(ToDocument(r), doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("parsed document mismatch (-want +got):\n%s", diff)
	}

	again, err := EncodeDocument(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, again), "re-serialized document differs")
}

func TestParseJSON_Invalid(t *testing.T) {
	_, err := ParseJSON([]byte(`{"a":`))
	assert.Error(t, err)
}

func TestExportFlatTable(t *testing.T) {
	r := buildFixture(t)

	table, err := ExportFlatTable(r, "client_insights.client_activity", nil)
	require.NoError(t, err)
	assert.Equal(t, "client_activity", table.Name)
	assert.Equal(t, []string{"client_id", "client_name", "total_tasks", "total_meetings", "total_communications"}, table.Header)
	assert.Equal(t, []string{"c1", "Vance and Sons", "2", "0", "1"}, table.Rows[0])

	table, err = ExportFlatTable(r, "meeting_analysis.upcoming_meetings", []string{"date", "id", "duration"})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"2025-01-03T00:00:00Z", "3", ""},
		{"2025-01-06T00:00:00Z", "2", "90"},
	}, table.Rows)
}

func TestExportFlatTable_Errors(t *testing.T) {
	r := buildFixture(t)

	_, err := ExportFlatTable(r, "task_analysis.status_distribution", nil)
	assert.ErrorIs(t, err, types.ErrSectionNotTabular)

	_, err = ExportFlatTable(r, "client_insights", nil)
	assert.ErrorIs(t, err, types.ErrSectionNotTabular)

	_, err = ExportFlatTable(r, "task_analysis.nope", nil)
	assert.ErrorIs(t, err, types.ErrSectionNotFound)

	_, err = ExportFlatTable(r, "", nil)
	assert.ErrorIs(t, err, types.ErrSectionNotFound)

	_, err = ExportFlatTable(r, "recent_activities.recent_tasks", []string{"id", "colour"})
	assert.ErrorIs(t, err, types.ErrUnknownField)
}

func TestTables_DefaultConfig(t *testing.T) {
	tables, err := Tables(buildFixture(t), fixtureDataset(), DefaultConfig(), asOf)
	require.NoError(t, err)
	require.Len(t, tables, 3)

	names := []string{tables[0].Name, tables[1].Name, tables[2].Name}
	assert.Equal(t, []string{"task_status_report", "client_activity_summary", "upcoming_meetings"}, names)
	assert.Equal(t, []string{"status", "count", "priority_distribution"}, tables[0].Header)
}

func TestTables_UpcomingListsEveryRecord(t *testing.T) {
	ds := fixtureDataset()
	ds.Meetings = nil
	for i := 9; i >= 3; i-- {
		ds.Meetings = append(ds.Meetings, entity.Meeting{ID: strconv.Itoa(i), ClientID: "c1", Type: "Virtual", Date: day(i, 10)})
	}
	ds.Meetings = append(ds.Meetings, entity.Meeting{ID: "past", ClientID: "c1", Date: day(1, 10)})

	r, err := Build(ds, DefaultConfig(), asOf)
	require.NoError(t, err)
	section := lookup[*entity.RecordList](t, r, "meeting_analysis.upcoming_meetings")
	assert.Equal(t, DefaultTopN, section.Len())

	tables, err := Tables(r, ds, DefaultConfig(), asOf)
	require.NoError(t, err)
	upcoming := tables[2]
	assert.Equal(t, "upcoming_meetings", upcoming.Name)
	assert.Equal(t, []string{"id", "client_id", "type", "date", "duration", "status"}, upcoming.Header)
	require.Len(t, upcoming.Rows, 7)
	ids := make([]string, len(upcoming.Rows))
	for i, row := range upcoming.Rows {
		ids[i] = row[0]
	}
	assert.Equal(t, []string{"3", "4", "5", "6", "7", "8", "9"}, ids)
}

func TestUpcomingTable_RequiresRecencyField(t *testing.T) {
	cfg := DefaultConfig()
	_, err := UpcomingTable(fixtureDataset(), cfg, "clients", asOf, nil)
	assert.ErrorIs(t, err, types.ErrUnknownCollection)

	cfg.Tables = []types.TableConfig{{Name: "later", Upcoming: "communications"}}
	cfg.Collections[2].RecencyField = ""
	cfg.Collections[2].DayField = ""
	assert.ErrorIs(t, ValidateConfig(cfg), types.ErrUnknownCollection)
}

func TestValidateConfig_SectionClashes(t *testing.T) {
	cases := map[string]func(cfg *types.ReportConfig){
		"area named like client insights": func(cfg *types.ReportConfig) { cfg.Collections[0].Area = SectionClientInsights },
		"area named like recent activities": func(cfg *types.ReportConfig) {
			cfg.Collections[1].Area = SectionRecentActivities
		},
		"two collections in one area": func(cfg *types.ReportConfig) { cfg.Collections[1].Area = "task_analysis" },
		"area of unconfigured collection": func(cfg *types.ReportConfig) {
			cfg.Collections = cfg.Collections[:1]
			cfg.Collections[0].Area = "meetings_analysis"
			cfg.Tables = nil
		},
		"upcoming replaces total":       func(cfg *types.ReportConfig) { cfg.Collections[0].UpcomingSection = "total_tasks" },
		"overdue replaces distribution": func(cfg *types.ReportConfig) { cfg.Collections[0].OverdueSection = "status_distribution" },
		"upcoming equals overdue":       func(cfg *types.ReportConfig) { cfg.Collections[0].OverdueSection = "upcoming_deadlines" },
		"upcoming replaces average": func(cfg *types.ReportConfig) {
			cfg.Collections[1].UpcomingSection = "average_duration"
		},
		"repeated category": func(cfg *types.ReportConfig) {
			cfg.Collections[2].Categories = []string{"type", "type"}
		},
		"collection configured twice": func(cfg *types.ReportConfig) {
			cfg.Collections = append(cfg.Collections, types.CollectionConfig{Name: "tasks", Area: "more_tasks"})
		},
		"repeated table name": func(cfg *types.ReportConfig) {
			cfg.Tables = append(cfg.Tables, types.TableConfig{Name: "task_status_report", Section: "task_analysis.status_breakdown"})
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			assert.ErrorIs(t, ValidateConfig(cfg), types.ErrDuplicateSection)

			_, err := Build(fixtureDataset(), cfg, asOf)
			assert.ErrorIs(t, err, types.ErrDuplicateSection)
		})
	}
}

func TestValidateConfig_TableSource(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Tables = []types.TableConfig{{Name: "both", Section: "task_analysis.status_breakdown", Upcoming: "tasks"}}
	assert.Error(t, ValidateConfig(cfg))

	cfg.Tables = []types.TableConfig{{Name: "neither"}}
	assert.Error(t, ValidateConfig(cfg))
}

func TestParseJSON_RoundTripInvalidUTF8(t *testing.T) {
	ds := fixtureDataset()
	ds.Clients[0].Name = "Caf\xe9 Ltd"

	r, err := Build(ds, DefaultConfig(), asOf)
	require.NoError(t, err)
	data, err := ExportJSON(r)
	require.NoError(t, err)

	doc, err := ParseJSON(data)
	require.NoError(t, err)
	if diff := cmp.Diff(ToDocument(r), doc, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("parsed document mismatch (-want +got):\n%s", diff)
	}
	again, err := EncodeDocument(doc)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(data, again), "re-serialized document differs")

	activity, ok := doc.Field(SectionClientInsights)
	require.True(t, ok)
	activity, ok = activity.Field("client_activity")
	require.True(t, ok)
	require.NotEmpty(t, activity.Items)
	name, ok := activity.Items[0].Field("client_name")
	require.True(t, ok)
	assert.Equal(t, "Caf\uFFFD Ltd", name.Raw)
}

func TestDocumentField(t *testing.T) {
	doc := ToDocument(buildFixture(t))

	insights, ok := doc.Field(SectionClientInsights)
	require.True(t, ok)
	total, ok := insights.Field("total_clients")
	require.True(t, ok)
	assert.Equal(t, entity.NodeNumber, total.Kind)
	assert.Equal(t, "3", total.Raw)

	_, ok = doc.Field("nope")
	assert.False(t, ok)
	_, ok = total.Field("x")
	assert.False(t, ok)
}
