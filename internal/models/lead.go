package models

import (
	"fmt"
	"time"
)

type LeadStatus string

// Lead statuses. The set is flat: any status may be written over any other.
const (
	LeadStatusNew                LeadStatus = "new"
	LeadStatusContacted          LeadStatus = "contacted"
	LeadStatusQualified          LeadStatus = "qualified"
	LeadStatusTestDriveScheduled LeadStatus = "testDriveScheduled"
	LeadStatusWon                LeadStatus = "won"
	LeadStatusLost               LeadStatus = "lost"
)

var AllLeadStatuses = []LeadStatus{
	LeadStatusNew,
	LeadStatusContacted,
	LeadStatusQualified,
	LeadStatusTestDriveScheduled,
	LeadStatusWon,
	LeadStatusLost,
}

var leadStatusLabels = map[LeadStatus]string{
	LeadStatusNew:                "New",
	LeadStatusContacted:          "Contacted",
	LeadStatusQualified:          "Qualified",
	LeadStatusTestDriveScheduled: "Test Drive",
	LeadStatusWon:                "Won",
	LeadStatusLost:               "Lost",
}

func (s LeadStatus) IsValid() bool {
	_, ok := leadStatusLabels[s]
	return ok
}

// Label is the display name used in lists and badges.
func (s LeadStatus) Label() string {
	if l, ok := leadStatusLabels[s]; ok {
		return l
	}
	return "Unknown"
}

func ParseLeadStatus(s string) (LeadStatus, error) {
	st := LeadStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid lead status %q", s)
	}
	return st, nil
}

// CanTransition is true for every pair of valid statuses, including
// reopening won or lost leads.
func CanTransition(from, to LeadStatus) bool {
	return from.IsValid() && to.IsValid()
}

// FollowUpUnset is the follow-up timestamp of a freshly captured lead.
var FollowUpUnset = time.Unix(0, 0).UTC()

type Lead struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	ContactInfo      string     `json:"contact_info"`
	VehicleInterest  string     `json:"vehicle_interest"`
	Timeframe        string     `json:"timeframe"`
	Consent          bool       `json:"consent"`
	Status           LeadStatus `json:"status"`
	Notes            []string   `json:"notes"`
	ContentPackageID int64      `json:"content_package_id"`
	NextFollowUpAt   time.Time  `json:"next_follow_up_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Vehicle interest and timeframe choices offered by the landing form.
// Neither is enforced on capture.
var (
	VehicleInterestOptions = []string{"Ford F-150", "Ford Mustang", "Ford Explorer", "Other"}
	TimeframeOptions       = []string{"Immediately", "Within 1 month", "1-3 months", "3-6 months", "Just browsing"}
)
