package dataset

import (
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/diillson/client-insights-go/internal/domain/entity"
)

// rawRow é uma linha lida da fonte, indexada pelo nome de campo normalizado.
type rawRow map[string]string

// aliases mapeia cabeçalhos alternativos (ex.: "Task ID", "Meeting Type") para os
// campos conhecidos de cada coleção.
var aliases = map[string]map[string]string{
	entity.ClientSchema.Name: {
		"client_id":   entity.FieldID,
		"client_name": entity.FieldName,
	},
	entity.TaskSchema.Name: {
		"task_id":   entity.FieldID,
		"task_name": entity.FieldName,
	},
	entity.MeetingSchema.Name: {
		"meeting_id":   entity.FieldID,
		"meeting_type": entity.FieldType,
	},
	entity.CommunicationSchema.Name: {
		"communication_id": entity.FieldID,
	},
}

// normalizeHeader converte um cabeçalho para snake_case e aplica os aliases da coleção.
func normalizeHeader(collection, header string) string {
	var b strings.Builder
	prevUnderscore := true
	for _, r := range strings.TrimSpace(header) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			prevUnderscore = false
		case !prevUnderscore:
			b.WriteByte('_')
			prevUnderscore = true
		}
	}
	key := strings.TrimSuffix(b.String(), "_")
	if alias, ok := aliases[collection][key]; ok {
		return alias
	}
	return key
}

func (r rawRow) str(field string) string {
	return strings.TrimSpace(r[field])
}

func (r rawRow) date(field string) time.Time {
	parsed, _ := entity.ParseDate(r.str(field))
	return parsed
}

func (r rawRow) number(field string) *float64 {
	s := r.str(field)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &n
}

// buildDataset converte as linhas brutas de cada coleção nos tipos do domínio.
// Datas e números inválidos ficam ausentes em vez de falhar a carga.
func buildDataset(tables map[string][]rawRow) *entity.Dataset {
	ds := &entity.Dataset{}

	for _, r := range tables[entity.ClientSchema.Name] {
		ds.Clients = append(ds.Clients, entity.Client{
			ID:   r.str(entity.FieldID),
			Name: r.str(entity.FieldName),
		})
	}
	for _, r := range tables[entity.TaskSchema.Name] {
		ds.Tasks = append(ds.Tasks, entity.Task{
			ID:       r.str(entity.FieldID),
			ClientID: r.str(entity.FieldClientID),
			Name:     r.str(entity.FieldName),
			Status:   r.str(entity.FieldStatus),
			DueDate:  r.date(entity.FieldDueDate),
			Priority: r.str(entity.FieldPriority),
		})
	}
	for _, r := range tables[entity.MeetingSchema.Name] {
		ds.Meetings = append(ds.Meetings, entity.Meeting{
			ID:       r.str(entity.FieldID),
			ClientID: r.str(entity.FieldClientID),
			Type:     r.str(entity.FieldType),
			Date:     r.date(entity.FieldDate),
			Duration: r.number(entity.FieldDuration),
			Status:   r.str(entity.FieldStatus),
		})
	}
	for _, r := range tables[entity.CommunicationSchema.Name] {
		ds.Communications = append(ds.Communications, entity.Communication{
			ID:        r.str(entity.FieldID),
			ClientID:  r.str(entity.FieldClientID),
			Type:      r.str(entity.FieldType),
			Date:      r.date(entity.FieldDate),
			Direction: r.str(entity.FieldDirection),
		})
	}

	return ds
}

// tableNames lists the source tables in load order.
func tableNames() []string {
	return []string{
		entity.ClientSchema.Name,
		entity.TaskSchema.Name,
		entity.MeetingSchema.Name,
		entity.CommunicationSchema.Name,
	}
}
