// Package report assembles aggregator results into an ordered Report and exports it.
package report

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/diillson/client-insights-go/internal/application/aggregate"
	"github.com/diillson/client-insights-go/internal/domain/entity"
	"github.com/diillson/client-insights-go/internal/shared/types"
)

// Chaves das seções de nível superior.
const (
	SectionClientInsights   = "client_insights"
	SectionRecentActivities = "recent_activities"
)

// Build computes the full report for ds. Collections without configuration only
// get their total; every optional section depends on the field that enables it.
// asOf splits upcoming from overdue records.
func Build(ds *entity.Dataset, cfg types.ReportConfig, asOf time.Time) (*entity.Report, error) {
	if ds == nil {
		ds = &entity.Dataset{}
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	cfg = withDefaults(cfg)

	collections := ds.Collections()
	configs := make([]*types.CollectionConfig, len(collections))
	for i, c := range collections {
		configs[i] = findConfig(cfg, c.Name)
	}

	// Cada área é independente; apenas a junção final é ordenada.
	areas := make([]*entity.Report, len(collections))
	var clientInsights, recent *entity.Report

	var g errgroup.Group
	g.Go(func() error {
		clientInsights = buildClientInsights(ds, collections, configs)
		return nil
	})
	for i := range collections {
		i := i
		g.Go(func() error {
			areas[i] = buildArea(collections[i], configs[i], cfg.TopN, asOf)
			return nil
		})
	}
	g.Go(func() error {
		recent = buildRecentActivities(collections, configs, cfg.TopN)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := entity.NewReport()
	out.Set(SectionClientInsights, clientInsights)
	for i, c := range collections {
		out.Set(areaName(c.Name, configs[i]), areas[i])
	}
	if recent.Len() > 0 {
		out.Set(SectionRecentActivities, recent)
	}
	return out, nil
}

func findConfig(cfg types.ReportConfig, name string) *types.CollectionConfig {
	for i := range cfg.Collections {
		if cfg.Collections[i].Name == name {
			return &cfg.Collections[i]
		}
	}
	return nil
}

func areaName(collection string, cc *types.CollectionConfig) string {
	if cc != nil && cc.Area != "" {
		return cc.Area
	}
	return collection + "_analysis"
}

// buildClientInsights monta o total de clientes, a distribuição de atividade por
// cliente e a tabela de atividade por cliente.
func buildClientInsights(ds *entity.Dataset, collections []entity.Collection, configs []*types.CollectionConfig) *entity.Report {
	universe := ds.ClientIDs()
	insights := entity.NewReport()
	insights.Set("total_clients", entity.Number(float64(len(ds.Clients))))

	distribution := entity.NewReport()
	columns := []string{entity.FieldClientID, "client_name"}
	perClient := make([]*entity.Counts, 0, len(collections))
	perClientCols := make([]string, 0, len(collections))

	for i, c := range collections {
		cc := configs[i]
		if cc == nil || cc.ForeignKey == "" {
			continue
		}
		counts := aggregate.GroupCountByKey(c.Records, cc.ForeignKey, universe)
		distribution.Set(c.Name+"_per_client", aggregate.SummarizeCounts(counts))
		perClient = append(perClient, counts)
		perClientCols = append(perClientCols, "total_"+c.Name)
	}

	if distribution.Len() == 0 {
		return insights
	}
	insights.Set("client_distribution", distribution)

	activity := &entity.RecordList{Columns: append(columns, perClientCols...)}
	for _, client := range ds.Clients {
		row := entity.NewRow(columns...).
			Set(entity.FieldClientID, entity.String(client.ID)).
			Set("client_name", entity.String(client.Name))
		for j, counts := range perClient {
			row.Set(perClientCols[j], entity.Number(float64(counts.Get(client.ID))))
		}
		activity.Rows = append(activity.Rows, row)
	}
	insights.Set("client_activity", activity)

	return insights
}

// buildArea monta o relatório de uma coleção rastreada.
func buildArea(c entity.Collection, cc *types.CollectionConfig, topN int, asOf time.Time) *entity.Report {
	area := entity.NewReport()
	area.Set("total_"+c.Name, entity.Number(float64(len(c.Records))))
	if cc == nil {
		return area
	}

	for _, field := range cc.Categories {
		area.Set(field+"_distribution", aggregate.CountsByCategory(c.Records, field))
	}

	if cc.Breakdown != nil {
		area.Set(cc.Breakdown.By+"_breakdown", breakdown(c.Records, *cc.Breakdown))
	}

	if cc.RecencyField != "" {
		if cc.UpcomingSection != "" {
			upcoming := aggregate.FilterByDate(c.Records, cc.RecencyField, aggregate.OnOrAfter(asOf))
			upcoming = aggregate.TopNByField(upcoming, cc.RecencyField, topN, false)
			area.Set(cc.UpcomingSection, entity.NewRecordList(upcoming, c.Schema))
		}
		if cc.OverdueSection != "" {
			overdue := aggregate.FilterByDate(c.Records, cc.RecencyField, aggregate.Before(asOf))
			area.Set(cc.OverdueSection, entity.Number(float64(len(overdue))))
		}
	}

	if cc.NumericField != "" {
		summary := aggregate.NumericSummary(c.Records, cc.NumericField)
		average := entity.Missing()
		if summary != nil {
			average = entity.Number(summary.Mean)
		}
		area.Set("average_"+cc.NumericField, average)
		area.Set(cc.NumericField+"_summary", summary)
	}

	if cc.DayField != "" {
		perDay := aggregate.CountsByCategory(c.Records, cc.DayField)
		days := perDay.Len()
		if perDay.Has(entity.MissingCategory) {
			days--
		}
		dailyAverage, busiest := entity.Missing(), entity.Missing()
		if days > 0 {
			dated := perDay.Total() - perDay.Get(entity.MissingCategory)
			dailyAverage = entity.Number(float64(dated) / float64(days))
			dayCounts := entity.NewCounts()
			for _, k := range perDay.Keys() {
				if k != entity.MissingCategory {
					dayCounts.Add(k, perDay.Get(k))
				}
			}
			if key, _, ok := aggregate.Argmax(dayCounts); ok {
				busiest = entity.String(key)
			}
		}
		area.Set("daily_average", dailyAverage)
		area.Set("busiest_day", busiest)
	}

	return area
}

// breakdown gera uma linha por categoria de By com a contagem e a distribuição de Within.
func breakdown(records []entity.Record, bc types.BreakdownConfig) *entity.RecordList {
	withinCol := bc.Within + "_distribution"
	list := &entity.RecordList{Columns: []string{bc.By, "count", withinCol}}

	groups := aggregate.CountsByCategory(records, bc.By)
	for _, key := range groups.Keys() {
		members := make([]entity.Record, 0, groups.Get(key))
		for _, r := range records {
			v, ok := r.Field(bc.By)
			if (ok && v.Text() == key) || (!ok && key == entity.MissingCategory) {
				members = append(members, r)
			}
		}
		within := aggregate.CountsByCategory(members, bc.Within)
		list.Rows = append(list.Rows, entity.NewRow(list.Columns...).
			Set(bc.By, entity.String(key)).
			Set("count", entity.Number(float64(groups.Get(key)))).
			Set(withinCol, entity.String(formatCounts(within))))
	}
	return list
}

func formatCounts(c *entity.Counts) string {
	parts := make([]string, 0, c.Len())
	for _, k := range c.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%d", k, c.Get(k)))
	}
	return strings.Join(parts, "; ")
}

// buildRecentActivities seleciona os N registros mais recentes de cada coleção.
func buildRecentActivities(collections []entity.Collection, configs []*types.CollectionConfig, topN int) *entity.Report {
	recent := entity.NewReport()
	for i, c := range collections {
		cc := configs[i]
		if cc == nil || cc.RecencyField == "" {
			continue
		}
		top := aggregate.TopNByField(c.Records, cc.RecencyField, topN, true)
		recent.Set("recent_"+c.Name, entity.NewRecordList(top, c.Schema))
	}
	return recent
}
