package entity

// Collection agrupa os registros de um tipo de atividade rastreada.
type Collection struct {
	Name    string
	Schema  Schema
	Records []Record
}

// Dataset contém todas as entradas de uma execução do relatório.
type Dataset struct {
	Clients        []Client
	Tasks          []Task
	Meetings       []Meeting
	Communications []Communication
}

// ClientIDs returns the client ids in input order, used as the grouping universe.
func (d *Dataset) ClientIDs() []string {
	ids := make([]string, 0, len(d.Clients))
	for _, c := range d.Clients {
		ids = append(ids, c.ID)
	}
	return ids
}

// Collections returns the tracked collections in their fixed order.
func (d *Dataset) Collections() []Collection {
	return []Collection{
		{Name: TaskSchema.Name, Schema: TaskSchema, Records: asRecords(d.Tasks)},
		{Name: MeetingSchema.Name, Schema: MeetingSchema, Records: asRecords(d.Meetings)},
		{Name: CommunicationSchema.Name, Schema: CommunicationSchema, Records: asRecords(d.Communications)},
	}
}

// Schemas indexa os schemas conhecidos pelo nome da coleção.
func Schemas() map[string]Schema {
	return map[string]Schema{
		ClientSchema.Name:        ClientSchema,
		TaskSchema.Name:          TaskSchema,
		MeetingSchema.Name:       MeetingSchema,
		CommunicationSchema.Name: CommunicationSchema,
	}
}

func asRecords[R Record](in []R) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r
	}
	return out
}
