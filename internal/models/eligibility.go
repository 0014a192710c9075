package models

import (
	"time"
)

// UserProfile - то, что известно о доноре; отсутствующие поля не считаются ошибкой
type UserProfile struct {
	BloodGroup       BloodGroup `json:"blood_group,omitempty"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
}

type EligibilityVerdict struct {
	BloodGroupMatch bool     `json:"blood_group_match"`
	DonationGapMet  bool     `json:"donation_gap_met"`
	Eligible        bool     `json:"eligible"`
	Reasons         []string `json:"reasons"`
}
