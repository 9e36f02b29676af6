package model

// ScheduleSession is one entry of a facilitator's locally edited schedule.
type ScheduleSession struct {
	ID       string `json:"id"`
	City     string `json:"city"`
	Date     string `json:"date"`
	Location string `json:"location"`
	Time     string `json:"time"`
	Cost     string `json:"cost"`
}

// SessionPatch carries the fields of a partial session update. Nil fields
// are left untouched.
type SessionPatch struct {
	City     *string `json:"city,omitempty"`
	Date     *string `json:"date,omitempty"`
	Location *string `json:"location,omitempty"`
	Time     *string `json:"time,omitempty"`
	Cost     *string `json:"cost,omitempty"`
}

// Apply merges the non-nil fields of p into s.
func (p SessionPatch) Apply(s *ScheduleSession) {
	if p.City != nil {
		s.City = *p.City
	}
	if p.Date != nil {
		s.Date = *p.Date
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Time != nil {
		s.Time = *p.Time
	}
	if p.Cost != nil {
		s.Cost = *p.Cost
	}
}
