package entity

// Nomes de campos comuns às coleções.
const (
	FieldID       = "id"
	FieldClientID = "client_id"
	FieldName     = "name"
	FieldStatus   = "status"
	FieldType     = "type"
	FieldDate     = "date"
	// FieldDay é derivado do campo de data principal do registro (somente a data, YYYY-MM-DD).
	FieldDay = "day"
)

// ClientSchema lists the known client fields.
var ClientSchema = Schema{Name: "clients", Fields: []string{FieldID, FieldName}}

// Client is the entity every collection references through client_id.
type Client struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Field implements Record.
func (c Client) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return present(String(c.ID))
	case FieldName:
		return present(String(c.Name))
	}
	return Missing(), false
}

// present descarta strings vazias como ausentes.
func present(v Value) (Value, bool) {
	if v.Kind() == KindString && v.Text() == "" {
		return Missing(), false
	}
	return v, !v.IsMissing()
}

func dayOf(v Value) (Value, bool) {
	t, ok := v.AsTime()
	if !ok {
		return Missing(), false
	}
	return String(t.Format("2006-01-02")), true
}
