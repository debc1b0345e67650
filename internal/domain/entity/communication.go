package entity

import "time"

const FieldDirection = "direction"

// CommunicationSchema lists the known communication fields.
var CommunicationSchema = Schema{
	Name:    "communications",
	Fields:  []string{FieldID, FieldClientID, FieldType, FieldDate, FieldDirection},
	Derived: []string{FieldDay},
}

// Communication is a single logged contact with a client (email, phone, ...).
type Communication struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Type      string    `json:"type"`
	Date      time.Time `json:"date"`
	Direction string    `json:"direction"`
}

// Field implements Record.
func (c Communication) Field(name string) (Value, bool) {
	switch name {
	case FieldID:
		return present(String(c.ID))
	case FieldClientID:
		return present(String(c.ClientID))
	case FieldType:
		return present(String(c.Type))
	case FieldDate:
		return present(Time(c.Date))
	case FieldDirection:
		return present(String(c.Direction))
	case FieldDay:
		return dayOf(Time(c.Date))
	}
	return Missing(), false
}
