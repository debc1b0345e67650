package entity

import "slices"

// Record is a uniform row of a collection, addressed by field name.
type Record interface {
	Field(name string) (Value, bool)
}

// Schema declara os campos conhecidos de uma coleção, na ordem de exportação.
// Derived lista campos calculados, aceitos em agregações mas fora das exportações.
type Schema struct {
	Name    string
	Fields  []string
	Derived []string
}

// Has reports whether field is declared by the schema, stored or derived.
func (s Schema) Has(field string) bool {
	return slices.Contains(s.Fields, field) || slices.Contains(s.Derived, field)
}

// Row é um registro genérico com colunas ordenadas, usado em tabelas derivadas.
type Row struct {
	columns []string
	values  map[string]Value
}

// NewRow cria uma linha vazia com as colunas declaradas.
func NewRow(columns ...string) *Row {
	return &Row{
		columns: slices.Clone(columns),
		values:  make(map[string]Value, len(columns)),
	}
}

// RowOf materializa um Record usando a ordem de campos do schema.
func RowOf(r Record, schema Schema) *Row {
	row := NewRow(schema.Fields...)
	for _, f := range schema.Fields {
		if v, ok := r.Field(f); ok {
			row.values[f] = v
		}
	}
	return row
}

// Set define o valor de uma coluna, acrescentando-a se ainda não existir.
func (r *Row) Set(column string, v Value) *Row {
	if !slices.Contains(r.columns, column) {
		r.columns = append(r.columns, column)
	}
	r.values[column] = v
	return r
}

// Field implements Record.
func (r *Row) Field(name string) (Value, bool) {
	v, ok := r.values[name]
	if !ok || v.IsMissing() {
		return Missing(), false
	}
	return v, true
}

// Columns returns the column names in declared order.
func (r *Row) Columns() []string {
	return slices.Clone(r.columns)
}
