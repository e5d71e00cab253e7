package models

import "time"

// Visit is a single tracked page view.
type Visit struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	Timestamp time.Time `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the Visit model.
func (v Visit) TableName() string {
	return "analytics_tracking"
}

// DailyVisits is the number of visits recorded on one calendar day (UTC).
type DailyVisits struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// VisitSummary aggregates tracked visits.
type VisitSummary struct {
	Total       int           `json:"total"`
	PeriodTotal int           `json:"periodTotal"`
	Days        []DailyVisits `json:"days"`
}
