// Package aggregate computes descriptive statistics over record collections.
// Every function is pure: inputs are never mutated and no state is kept.
package aggregate

import (
	"math"
	"slices"
	"sort"
	"time"

	"github.com/diillson/client-insights-go/internal/domain/entity"
)

// CountsByCategory tallies each distinct value of field. Records without the field
// are counted under entity.MissingCategory. Categories are ordered by count,
// descending, with ties kept in first-seen order.
func CountsByCategory[R entity.Record](records []R, field string) *entity.Counts {
	counts := entity.NewCounts()
	for _, r := range records {
		v, ok := r.Field(field)
		if !ok {
			counts.Add(entity.MissingCategory, 1)
			continue
		}
		counts.Add(v.Text(), 1)
	}
	counts.SortByCount()
	return counts
}

// NumericSummary describes the numeric values of field, ignoring missing and
// non-numeric values. It returns nil when no valid value remains.
func NumericSummary[R entity.Record](records []R, field string) *entity.Summary {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		v, ok := r.Field(field)
		if !ok {
			continue
		}
		if n, ok := v.AsNumber(); ok && !math.IsNaN(n) && !math.IsInf(n, 0) {
			values = append(values, n)
		}
	}
	return Summarize(values)
}

// SummarizeCounts describes the distribution of the counts themselves, e.g. tasks per client.
func SummarizeCounts(counts *entity.Counts) *entity.Summary {
	if counts == nil {
		return nil
	}
	values := make([]float64, 0, counts.Len())
	for _, k := range counts.Keys() {
		values = append(values, float64(counts.Get(k)))
	}
	return Summarize(values)
}

// Summarize computes count, mean, sample std, min, quartiles and max.
// Quartiles use linear interpolation between closest ranks.
func Summarize(values []float64) *entity.Summary {
	if len(values) == 0 {
		return nil
	}
	sorted := slices.Clone(values)
	sort.Float64s(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	n := len(sorted)
	mean := sum / float64(n)

	s := &entity.Summary{
		Count: n,
		Mean:  mean,
		Min:   sorted[0],
		P25:   quantile(sorted, 0.25),
		P50:   quantile(sorted, 0.50),
		P75:   quantile(sorted, 0.75),
		Max:   sorted[n-1],
	}

	if n > 1 {
		var sq float64
		for _, v := range sorted {
			sq += (v - mean) * (v - mean)
		}
		std := math.Sqrt(sq / float64(n-1))
		s.Std = &std
	}
	return s
}

// quantile espera valores já ordenados.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// GroupCountByKey counts records per value of keyField for every key in universe,
// in universe order. Keys with no records get 0; keys outside universe are ignored.
func GroupCountByKey[R entity.Record](records []R, keyField string, universe []string) *entity.Counts {
	counts := entity.NewCounts()
	for _, k := range universe {
		counts.Add(k, 0)
	}
	for _, r := range records {
		v, ok := r.Field(keyField)
		if !ok {
			continue
		}
		if key := v.Text(); counts.Has(key) {
			counts.Add(key, 1)
		}
	}
	return counts
}

// DatePredicate decide se uma data passa no filtro.
type DatePredicate func(time.Time) bool

// OnOrAfter matches dates at or after t.
func OnOrAfter(t time.Time) DatePredicate {
	return func(d time.Time) bool { return !d.Before(t) }
}

// Before matches dates strictly before t.
func Before(t time.Time) DatePredicate {
	return func(d time.Time) bool { return d.Before(t) }
}

// FilterByDate keeps the records whose dateField satisfies predicate, in input order.
// Records with a missing or unparsable date are dropped.
func FilterByDate[R entity.Record](records []R, dateField string, predicate DatePredicate) []R {
	out := make([]R, 0)
	for _, r := range records {
		v, ok := r.Field(dateField)
		if !ok {
			continue
		}
		t, ok := v.AsTime()
		if !ok {
			continue
		}
		if predicate(t) {
			out = append(out, r)
		}
	}
	return out
}

// TopNByField stable-sorts records by field and keeps the first n. Ties keep input
// order and records missing the field sort after all others in both directions.
func TopNByField[R entity.Record](records []R, field string, n int, descending bool) []R {
	if n <= 0 || len(records) == 0 {
		return []R{}
	}
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b R) int {
		av, aok := a.Field(field)
		bv, bok := b.Field(field)
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		}
		c := entity.Compare(av, bv)
		if descending {
			return -c
		}
		return c
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Argmax returns the first category holding the highest count.
func Argmax(counts *entity.Counts) (string, int, bool) {
	if counts == nil || counts.Len() == 0 {
		return "", 0, false
	}
	best, bestN := "", -1
	for _, k := range counts.Keys() {
		if n := counts.Get(k); n > bestN {
			best, bestN = k, n
		}
	}
	return best, bestN, true
}
