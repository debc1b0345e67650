package entity

import (
	"slices"
	"sort"
)

// MissingCategory is the bucket for records that lack the counted field.
const MissingCategory = "missing"

// Counts is an insertion-ordered category -> count mapping.
type Counts struct {
	keys   []string
	counts map[string]int
}

// NewCounts cria um mapa de contagens vazio.
func NewCounts() *Counts {
	return &Counts{counts: make(map[string]int)}
}

// Add soma n à categoria key, registrando-a na primeira ocorrência.
func (c *Counts) Add(key string, n int) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key] += n
}

// Get returns the count for key (0 when absent).
func (c *Counts) Get(key string) int {
	return c.counts[key]
}

// Has reports whether key has an entry.
func (c *Counts) Has(key string) bool {
	_, ok := c.counts[key]
	return ok
}

// Keys returns the categories in their current order.
func (c *Counts) Keys() []string {
	return slices.Clone(c.keys)
}

// Len returns the number of categories.
func (c *Counts) Len() int {
	return len(c.keys)
}

// Total soma todas as contagens.
func (c *Counts) Total() int {
	total := 0
	for _, n := range c.counts {
		total += n
	}
	return total
}

// SortByCount reordena as categorias por contagem decrescente, mantendo a ordem de
// chegada nos empates.
func (c *Counts) SortByCount() {
	sort.SliceStable(c.keys, func(i, j int) bool {
		return c.counts[c.keys[i]] > c.counts[c.keys[j]]
	})
}

// Map returns a plain copy of the counts.
func (c *Counts) Map() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
