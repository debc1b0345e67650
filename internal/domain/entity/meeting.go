package entity

import "time"

const FieldDuration = "duration"

// MeetingSchema lists the known meeting fields.
var MeetingSchema = Schema{
	Name:    "meetings",
	Fields:  []string{FieldID, FieldClientID, FieldType, FieldDate, FieldDuration, FieldStatus},
	Derived: []string{FieldDay},
}

// Meeting represents a scheduled or past client meeting.
type Meeting struct {
	ID       string    `json:"id"`
	ClientID string    `json:"client_id"`
	Type     string    `json:"type"`
	Date     time.Time `json:"date"`
	// Duration em minutos; nil quando desconhecida.
	Duration *float64 `json:"duration,omitempty"`
	Status   string   `json:"status"`
}

// Field implements Record.
func (m Meeting) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return present(String(m.ID))
	case FieldClientID:
		return present(String(m.ClientID))
	case FieldType:
		return present(String(m.Type))
	case FieldDate:
		return present(Time(m.Date))
	case FieldDuration:
		if m.Duration == nil {
			return Missing(), false
		}
		return Number(*m.Duration), true
	case FieldStatus:
		return present(String(m.Status))
	case FieldDay:
		return dayOf(Time(m.Date))
	}
	return Missing(), false
}
