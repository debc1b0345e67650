package entity

import "slices"

// Section is one value of a Report: a scalar Value, *Counts, *Summary,
// *RecordList or a nested *Report.
type Section interface {
	isSection()
}

func (Value) isSection()       {}
func (*Counts) isSection()     {}
func (*Summary) isSection()    {}
func (*RecordList) isSection() {}
func (*Report) isSection()     {}

// Report is an insertion-ordered mapping of section name to Section.
type Report struct {
	keys     []string
	sections map[string]Section
}

// NewReport cria um relatório vazio.
func NewReport() *Report {
	return &Report{sections: make(map[string]Section)}
}

// Set define uma seção. Redefinir uma seção existente mantém sua posição.
func (r *Report) Set(name string, s Section) *Report {
	if _, ok := r.sections[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.sections[name] = s
	return r
}

// Get returns the section stored under name.
func (r *Report) Get(name string) (Section, bool) {
	s, ok := r.sections[name]
	return s, ok
}

// Keys returns the section names in insertion order.
func (r *Report) Keys() []string {
	return slices.Clone(r.keys)
}

// Len returns the number of sections.
func (r *Report) Len() int { return len(r.keys) }

// Lookup walks nested reports following path.
func (r *Report) Lookup(path ...string) (Section, bool) {
	if len(path) == 0 {
		return r, true
	}
	s, ok := r.Get(path[0])
	if !ok {
		return nil, false
	}
	if len(path) == 1 {
		return s, true
	}
	nested, ok := s.(*Report)
	if !ok || nested == nil {
		return nil, false
	}
	return nested.Lookup(path[1:]...)
}

// MarshalJSON encodes the report with its keys in insertion order.
func (r *Report) MarshalJSON() ([]byte, error) {
	return r.Document().MarshalJSON()
}
