package types

import "time"

// StateTable carries the per-state submission sequence counters. Increments
// happen atomically in the store so concurrent submissions never share a
// state number.
type StateTable struct {
	StateCode string `gorm:"column:state_code;primaryKey" json:"state_code"`
	Name      string `gorm:"column:name" json:"name"`

	LatestStateSubmissionNumber int `gorm:"column:latest_state_submission_number;not null;default:0" json:"latest_state_submission_number"`
	LatestStateRateCertNumber   int `gorm:"column:latest_state_rate_cert_number;not null;default:0" json:"latest_state_rate_cert_number"`

	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (StateTable) TableName() string { return "state" }
