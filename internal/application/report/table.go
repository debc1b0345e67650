package report

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/diillson/client-insights-go/internal/application/aggregate"
	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/shared/types"
)

// SplitPath converte "a.b.c" nos segmentos de caminho de uma seção.
func SplitPath(path string) []string {
	parts := strings.Split(path, ".")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ExportFlatTable flattens the record-sequence section at sectionPath (dot separated).
// columns fixes the header order; when empty the section's own column order is used.
// It fails with types.ErrSectionNotTabular when the section is not a record sequence.
func ExportFlatTable(r *entity.Report, sectionPath string, columns []string) (*entity.FlatTable, error) {
	path := SplitPath(sectionPath)
	if r == nil || len(path) == 0 {
		return nil, fmt.Errorf("%w: %q", types.ErrSectionNotFound, sectionPath)
	}

	section, ok := r.Lookup(path...)
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrSectionNotFound, sectionPath)
	}
	list, ok := section.(*entity.RecordList)
	if !ok || list == nil {
		return nil, fmt.Errorf("%w: %q", types.ErrSectionNotTabular, sectionPath)
	}

	return flatten(list, path[len(path)-1], sectionPath, columns)
}

// flatten converte uma RecordList em linhas de texto na ordem de colunas pedida.
func flatten(list *entity.RecordList, name, source string, columns []string) (*entity.FlatTable, error) {
	header := list.Columns
	if len(columns) > 0 {
		for _, c := range columns {
			if !slices.Contains(list.Columns, c) {
				return nil, fmt.Errorf("section %q: %w: %q", source, types.ErrUnknownField, c)
			}
		}
		header = columns
	}

	table := &entity.FlatTable{
		Name:   name,
		Header: slices.Clone(header),
		Rows:   make([][]string, 0, list.Len()),
	}
	for _, row := range list.Rows {
		cells := make([]string, len(header))
		for i, col := range header {
			if v, ok := row.Field(col); ok {
				cells[i] = v.Text()
			}
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// UpcomingTable lists every record of collection dated on or after asOf, ascending by
// its recency field. Unlike the upcoming report section it is not limited to top_n.
func UpcomingTable(ds *entity.Dataset, cfg types.ReportConfig, collection string, asOf time.Time, columns []string) (*entity.FlatTable, error) {
	if ds == nil {
		ds = &entity.Dataset{}
	}
	cc := findConfig(cfg, collection)
	if cc == nil || cc.RecencyField == "" {
		return nil, fmt.Errorf("%w: %q has no recency_field", types.ErrUnknownCollection, collection)
	}
	for _, c := range ds.Collections() {
		if c.Name != collection {
			continue
		}
		upcoming := aggregate.FilterByDate(c.Records, cc.RecencyField, aggregate.OnOrAfter(asOf))
		upcoming = aggregate.TopNByField(upcoming, cc.RecencyField, len(upcoming), false)
		return flatten(entity.NewRecordList(upcoming, c.Schema), collection, "upcoming "+collection, columns)
	}
	return nil, fmt.Errorf("%w: %q", types.ErrUnknownCollection, collection)
}

// Tables extrai todas as tabelas configuradas, nomeando cada uma pelo seu TableConfig.
// Tabelas com Upcoming são calculadas a partir do dataset; as demais leem uma seção de r.
func Tables(r *entity.Report, ds *entity.Dataset, cfg types.ReportConfig, asOf time.Time) ([]*entity.FlatTable, error) {
	tables := make([]*entity.FlatTable, 0, len(cfg.Tables))
	for _, tc := range cfg.Tables {
		var (
			table *entity.FlatTable
			err   error
		)
		if tc.Upcoming != "" {
			table, err = UpcomingTable(ds, cfg, tc.Upcoming, asOf, tc.Columns)
		} else {
			table, err = ExportFlatTable(r, tc.Section, tc.Columns)
		}
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", tc.Name, err)
		}
		table.Name = tc.Name
		tables = append(tables, table)
	}
	return tables, nil
}
