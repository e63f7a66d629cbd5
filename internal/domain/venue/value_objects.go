package venue

// Duration is one bookable length offered by a venue.
type Duration struct {
	ID        string   `json:"id"`
	Minutes   int      `json:"minutes"`
	BasePrice *float64 `json:"base_price,omitempty"`
	IsDefault bool     `json:"is_default"`
	Note      string   `json:"note,omitempty"`
}

// DefaultDuration picks the entry flagged as default, falling back to the
// first item. Only the first flagged entry counts.
func DefaultDuration(list []Duration) (Duration, bool) {
	if len(list) == 0 {
		return Duration{}, false
	}
	for _, d := range list {
		if d.IsDefault {
			return d, true
		}
	}
	return list[0], true
}

func FindDuration(list []Duration, id string) (Duration, bool) {
	for _, d := range list {
		if d.ID == id {
			return d, true
		}
	}
	return Duration{}, false
}

// Slot times are opaque time-of-day strings from the backend.
type Slot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (s Slot) IsZero() bool {
	return s.StartTime == "" && s.EndTime == ""
}

func ContainsSlot(list []Slot, s Slot) bool {
	for _, candidate := range list {
		if candidate == s {
			return true
		}
	}
	return false
}

// SlotKey identifies the slot list a (date, duration) pair produced.
type SlotKey struct {
	Date       string `json:"date"`
	DurationID string `json:"duration_id"`
}

func (k SlotKey) IsComplete() bool {
	return k.Date != "" && k.DurationID != ""
}
