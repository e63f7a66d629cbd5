package booking

import "time"

// Draft is the persistable continuation of an in-progress booking. It is a
// plain value so it can cross an authentication redirect.
type Draft struct {
	VenueID   string    `json:"venue_id"`
	Selection Selection `json:"selection"`
	SavedAt   time.Time `json:"saved_at"`
}

func NewDraft(venueID string, s Selection, savedAt time.Time) Draft {
	return Draft{
		VenueID:   venueID,
		Selection: s.Clone(),
		SavedAt:   savedAt,
	}
}

func (d Draft) Matches(venueID string) bool {
	return d.VenueID != "" && d.VenueID == venueID
}
