package entity

import "time"

const (
	FieldDueDate  = "due_date"
	FieldPriority = "priority"
)

// TaskSchema lists the known task fields.
var TaskSchema = Schema{
	Name:    "tasks",
	Fields:  []string{FieldID, FieldClientID, FieldName, FieldStatus, FieldDueDate, FieldPriority},
	Derived: []string{FieldDay},
}

// Task represents a unit of work owed to a client.
type Task struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	Name     string    `json:"name"`
	Status   string    `json:"status"`
	DueDate  time.Time `json:"due_date"`
	Priority string    `json:"priority"`
}

// Field implements Record.
func (t Task) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return present(String(t.ID))
	case FieldClientID:
		return present(String(t.ClientID))
	case FieldName:
		return present(String(t.Name))
	case FieldStatus:
		return present(String(t.Status))
	case FieldDueDate:
		return present(Time(t.DueDate))
	case FieldPriority:
		return present(String(t.Priority))
	case FieldDay:
		return dayOf(Time(t.DueDate))
	}
	return Missing(), false
}
