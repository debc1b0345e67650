package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diillson/client-insights-go/internal/domain/entity"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func minutes(m float64) *float64 { return &m }

func sampleTasks() []entity.Task {
	return []entity.Task{
		{ID: "1", ClientID: "c1", Status: "Done", Priority: "High", DueDate: day(3)},
		{ID: "2", ClientID: "c1", Status: "Pending", Priority: "Low", DueDate: day(1)},
		{ID: "3", ClientID: "c2", Status: "Done", Priority: "High", DueDate: day(2)},
	}
}

func TestCountsByCategory_Example(t *testing.T) {
	counts := CountsByCategory(sampleTasks(), entity.FieldStatus)

	assert.Equal(t, map[string]int{"Done": 2, "Pending": 1}, counts.Map())
	assert.Equal(t, []string{"Done", "Pending"}, counts.Keys())
}

func TestCountsByCategory_SumEqualsLength(t *testing.T) {
	tasks := append(sampleTasks(), entity.Task{ID: "4", ClientID: "c3"})

	for _, field := range entity.TaskSchema.Fields {
		counts := CountsByCategory(tasks, field)
		assert.Equal(t, len(tasks), counts.Total(), "field %s", field)
	}
}

func TestCountsByCategory_MissingField(t *testing.T) {
	tasks := []entity.Task{{ID: "1", Status: "Done"}, {ID: "2"}}

	counts := CountsByCategory(tasks, entity.FieldStatus)
	assert.Equal(t, 1, counts.Get("Done"))
	assert.Equal(t, 1, counts.Get(entity.MissingCategory))
}

func TestCountsByCategory_TiesKeepFirstSeenOrder(t *testing.T) {
	tasks := []entity.Task{{Status: "B"}, {Status: "A"}, {Status: "C"}, {Status: "A"}, {Status: "C"}}

	counts := CountsByCategory(tasks, entity.FieldStatus)
	assert.Equal(t, []string{"A", "C", "B"}, counts.Keys())
}

func TestNumericSummary(t *testing.T) {
	meetings := []entity.Meeting{
		{ID: "1", Duration: minutes(30)},
		{ID: "2", Duration: minutes(60)},
		{ID: "3"},
		{ID: "4", Duration: minutes(90)},
		{ID: "5", Duration: minutes(120)},
	}

	s := NumericSummary(meetings, entity.FieldDuration)
	require.NotNil(t, s)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 75.0, s.Mean, 1e-9)
	assert.Equal(t, 30.0, s.Min)
	assert.InDelta(t, 52.5, s.P25, 1e-9)
	assert.InDelta(t, 75.0, s.P50, 1e-9)
	assert.InDelta(t, 97.5, s.P75, 1e-9)
	assert.Equal(t, 120.0, s.Max)
	require.NotNil(t, s.Std)
	assert.InDelta(t, 38.729833, *s.Std, 1e-6)
}

func TestNumericSummary_Ordering(t *testing.T) {
	series := [][]float64{
		{5},
		{3, 1},
		{10, -2, 7, 7, 0.5},
		{1, 1, 1, 1},
	}
	for _, values := range series {
		s := Summarize(values)
		require.NotNil(t, s)
		assert.LessOrEqual(t, s.Min, s.P25)
		assert.LessOrEqual(t, s.P25, s.P50)
		assert.LessOrEqual(t, s.P50, s.P75)
		assert.LessOrEqual(t, s.P75, s.Max)
	}
}

func TestNumericSummary_SingleValueHasNoStd(t *testing.T) {
	s := Summarize([]float64{42})
	require.NotNil(t, s)
	assert.Nil(t, s.Std)
	assert.Equal(t, 42.0, s.P50)
}

func TestNumericSummary_Empty(t *testing.T) {
	assert.Nil(t, NumericSummary([]entity.Meeting{}, entity.FieldDuration))
	assert.Nil(t, NumericSummary([]entity.Meeting{{ID: "1"}}, entity.FieldDuration))
	// campos textuais não numéricos são ignorados
	assert.Nil(t, NumericSummary(sampleTasks(), entity.FieldStatus))
}

func TestGroupCountByKey_Example(t *testing.T) {
	counts := GroupCountByKey(sampleTasks(), entity.FieldClientID, []string{"c1", "c2", "c3"})

	assert.Equal(t, map[string]int{"c1": 2, "c2": 1, "c3": 0}, counts.Map())
	assert.Equal(t, []string{"c1", "c2", "c3"}, counts.Keys())
}

func TestGroupCountByKey_OneEntryPerUniverseKey(t *testing.T) {
	tasks := append(sampleTasks(), entity.Task{ID: "9", ClientID: "ghost"})

	counts := GroupCountByKey(tasks, entity.FieldClientID, []string{"c3"})
	assert.Equal(t, 1, counts.Len())
	assert.Equal(t, 0, counts.Get("c3"))
	assert.False(t, counts.Has("ghost"))

	empty := GroupCountByKey([]entity.Task{}, entity.FieldClientID, []string{"a", "b"})
	assert.Equal(t, map[string]int{"a": 0, "b": 0}, empty.Map())
}

func TestFilterByDate(t *testing.T) {
	tasks := append(sampleTasks(), entity.Task{ID: "4", Status: "Done"})

	upcoming := FilterByDate(tasks, entity.FieldDueDate, OnOrAfter(day(2)))
	require.Len(t, upcoming, 2)
	assert.Equal(t, "1", upcoming[0].ID)
	assert.Equal(t, "3", upcoming[1].ID)

	overdue := FilterByDate(tasks, entity.FieldDueDate, Before(day(2)))
	require.Len(t, overdue, 1)
	assert.Equal(t, "2", overdue[0].ID)
}

func TestFilterByDate_UnparsableStringsExcluded(t *testing.T) {
	rows := []*entity.Row{
		entity.NewRow().Set("when", entity.String("2025-01-05")),
		entity.NewRow().Set("when", entity.String("not a date")),
		entity.NewRow().Set("other", entity.String("x")),
	}

	out := FilterByDate(rows, "when", func(time.Time) bool { return true })
	require.Len(t, out, 1)
	assert.Same(t, rows[0], out[0])
}

func TestTopNByField(t *testing.T) {
	top := TopNByField(sampleTasks(), entity.FieldDueDate, 2, true)
	require.Len(t, top, 2)
	assert.Equal(t, "1", top[0].ID)
	assert.Equal(t, "3", top[1].ID)

	asc := TopNByField(sampleTasks(), entity.FieldDueDate, 5, false)
	require.Len(t, asc, 3)
	assert.Equal(t, []string{"2", "3", "1"}, []string{asc[0].ID, asc[1].ID, asc[2].ID})
}

func TestTopNByField_StableTiesAndMissingLast(t *testing.T) {
	tasks := []entity.Task{
		{ID: "a"},
		{ID: "b", DueDate: day(1)},
		{ID: "c", DueDate: day(1)},
		{ID: "d", DueDate: day(4)},
	}

	top := TopNByField(tasks, entity.FieldDueDate, 4, true)
	ids := make([]string, len(top))
	for i, tk := range top {
		ids[i] = tk.ID
	}
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids)
}

func TestTopNByField_Idempotent(t *testing.T) {
	comms := []entity.Communication{
		{ID: "1", Date: day(5)},
		{ID: "2", Date: day(9)},
		{ID: "3", Date: day(5)},
		{ID: "4", Date: day(7)},
		{ID: "5", Date: day(1)},
	}

	once := TopNByField(comms, entity.FieldDate, 3, true)
	twice := TopNByField(once, entity.FieldDate, 3, true)
	assert.Equal(t, once, twice)
}

func TestTopNByField_Empty(t *testing.T) {
	assert.Empty(t, TopNByField([]entity.Meeting{}, entity.FieldDate, 5, true))
	assert.Empty(t, TopNByField(sampleTasks(), entity.FieldDueDate, 0, true))
}

func TestTopNByField_DoesNotMutateInput(t *testing.T) {
	tasks := sampleTasks()
	_ = TopNByField(tasks, entity.FieldDueDate, 3, true)
	assert.Equal(t, sampleTasks(), tasks)
}

func TestArgmax_BusiestDay(t *testing.T) {
	comms := []entity.Communication{
		{ID: "1", Date: day(2).Add(time.Hour)},
		{ID: "2", Date: day(3)},
		{ID: "3", Date: day(3).Add(5 * time.Hour)},
		{ID: "4", Date: day(2).Add(2 * time.Hour)},
		{ID: "5", Date: day(3).Add(9 * time.Hour)},
	}

	perDay := CountsByCategory(comms, entity.FieldDay)
	key, n, ok := Argmax(perDay)
	require.True(t, ok)
	assert.Equal(t, "2025-01-03", key)
	assert.Equal(t, 3, n)

	_, _, ok = Argmax(entity.NewCounts())
	assert.False(t, ok)
}

func TestSummarizeCounts(t *testing.T) {
	counts := GroupCountByKey(sampleTasks(), entity.FieldClientID, []string{"c1", "c2", "c3"})

	s := SummarizeCounts(counts)
	require.NotNil(t, s)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 1.0, s.Mean, 1e-9)
	assert.Equal(t, 0.0, s.Min)
	assert.Equal(t, 2.0, s.Max)
}
