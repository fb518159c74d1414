package types

import (
	"time"

	"github.com/google/uuid"
)

// UpdateInfoTable is one submit or unlock event. SubmittedContracts and
// SubmittedRates are the revisions that were assigned this row as their
// submit info, i.e. everything touched in one submission.
type UpdateInfoTable struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
	UpdatedBy     string    `gorm:"column:updated_by;not null" json:"updated_by"`
	UpdatedReason string    `gorm:"column:updated_reason;not null" json:"updated_reason"`

	SubmittedContracts []ContractRevisionTable `gorm:"foreignKey:SubmitInfoID" json:"submitted_contracts,omitempty"`
	SubmittedRates     []RateRevisionTable     `gorm:"foreignKey:SubmitInfoID" json:"submitted_rates,omitempty"`

	SubmissionPackages []SubmissionPackageTable `gorm:"foreignKey:SubmissionID" json:"submission_packages,omitempty"`
}

func (UpdateInfoTable) TableName() string { return "update_info" }
