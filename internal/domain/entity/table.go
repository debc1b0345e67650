package entity

// RecordList é uma seção tabular: registros com colunas em ordem fixa.
type RecordList struct {
	Columns []string
	Rows    []*Row
}

// NewRecordList materializa registros tipados segundo o schema informado.
func NewRecordList[R Record](records []R, schema Schema) *RecordList {
	list := &RecordList{Columns: append([]string(nil), schema.Fields...), Rows: make([]*Row, 0, len(records))}
	for _, r := range records {
		list.Rows = append(list.Rows, RowOf(r, schema))
	}
	return list
}

// Len returns the number of rows.
func (l *RecordList) Len() int { return len(l.Rows) }

// FlatTable is a tabular export: a header row plus string cells.
type FlatTable struct {
	Name   string
	Header []string
	Rows   [][]string
}
