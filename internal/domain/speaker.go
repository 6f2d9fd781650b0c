package domain

// Speaker status values.
const (
	SpeakerStatusPending   = "PENDING"
	SpeakerStatusInvited   = "INVITED"
	SpeakerStatusResponded = "RESPONDED"
	SpeakerStatusConfirmed = "CONFIRMED"
)

// Column positions in the SPEAKERS table.
const (
	SpeakerColEventID = iota
	SpeakerColName
	SpeakerColEmail
	SpeakerColStatus
	SpeakerColConfirmed
	SpeakerColTopic
	SpeakerColFormURL
	SpeakerColRespondedAt
	SpeakerColMaterials
	speakerColumns
)

// Speaker is a speaker row bound to one event.
type Speaker struct {
	RowNum          int64
	EventID         string
	Name            string
	Email           string
	Status          string
	ConfirmedAt     string
	Topic           string
	FormURL         string
	RespondedAt     string
	MaterialsFolder string
}

// NewSpeaker returns a PENDING speaker for the event.
func NewSpeaker(eventID, name, email, topic string) *Speaker {
	return &Speaker{
		EventID: eventID,
		Name:    name,
		Email:   email,
		Status:  SpeakerStatusPending,
		Topic:   topic,
	}
}

// SpeakerFromRow decodes a SPEAKERS row.
func SpeakerFromRow(r Row) (*Speaker, error) {
	if err := requireWidth(TableSpeakers, r, speakerColumns); err != nil {
		return nil, err
	}
	return &Speaker{
		RowNum:          r.Num,
		EventID:         r.Cells[SpeakerColEventID],
		Name:            r.Cells[SpeakerColName],
		Email:           r.Cells[SpeakerColEmail],
		Status:          r.Cells[SpeakerColStatus],
		ConfirmedAt:     r.Cells[SpeakerColConfirmed],
		Topic:           r.Cells[SpeakerColTopic],
		FormURL:         r.Cells[SpeakerColFormURL],
		RespondedAt:     r.Cells[SpeakerColRespondedAt],
		MaterialsFolder: r.Cells[SpeakerColMaterials],
	}, nil
}

// Cells encodes the speaker as a SPEAKERS row.
func (s *Speaker) Cells() []string {
	return []string{
		s.EventID, s.Name, s.Email, s.Status, s.ConfirmedAt,
		s.Topic, s.FormURL, s.RespondedAt, s.MaterialsFolder,
	}
}

// Summary projects the speaker into the snapshot shape.
func (s *Speaker) Summary() SpeakerSummary {
	return SpeakerSummary{
		Name:      s.Name,
		Email:     s.Email,
		Status:    s.Status,
		Confirmed: s.ConfirmedAt,
		Topic:     s.Topic,
	}
}
