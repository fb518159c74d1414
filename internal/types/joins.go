package types

import (
	"time"

	"github.com/google/uuid"
)

// RateRevisionsOnContractRevisionTable records one change to a contract
// revision's rate linkage: a rate revision attached (or detached when
// IsRemoval) effective from ValidAfter. Entries with ValidAfter past the
// contract revision's own submit time represent mid-life link changes that
// happened without a contract resubmission.
type RateRevisionsOnContractRevisionTable struct {
	ContractRevisionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"contract_revision_id"`
	RateRevisionID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"rate_revision_id"`
	ValidAfter         time.Time `gorm:"column:valid_after;primaryKey" json:"valid_after"`

	RateRevision *RateRevisionTable `gorm:"foreignKey:RateRevisionID;references:ID" json:"rate_revision,omitempty"`

	IsRemoval bool `gorm:"column:is_removal;not null;default:false" json:"is_removal"`
}

func (RateRevisionsOnContractRevisionTable) TableName() string {
	return "rate_revisions_on_contract_revision"
}

// SubmissionPackageTable pairs, for one submission event, a rate revision
// with one contract revision it was bundled with. The rate-centric
// reconstruction groups these rows by SubmissionID.
type SubmissionPackageTable struct {
	SubmissionID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"submission_id"`
	ContractRevisionID uuid.UUID `gorm:"type:uuid;primaryKey" json:"contract_revision_id"`
	RateRevisionID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"rate_revision_id"`

	Submission       *UpdateInfoTable       `gorm:"foreignKey:SubmissionID;references:ID" json:"submission,omitempty"`
	ContractRevision *ContractRevisionTable `gorm:"foreignKey:ContractRevisionID;references:ID" json:"contract_revision,omitempty"`
	RateRevision     *RateRevisionTable     `gorm:"foreignKey:RateRevisionID;references:ID" json:"rate_revision,omitempty"`

	RatePosition int `gorm:"column:rate_position;not null;default:0" json:"rate_position"`
}

func (SubmissionPackageTable) TableName() string { return "submission_package" }

// DraftRateJoinTable links a contract's current draft to the rates being
// edited alongside it.
type DraftRateJoinTable struct {
	ContractID uuid.UUID `gorm:"type:uuid;primaryKey" json:"contract_id"`
	RateID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"rate_id"`

	Contract *ContractTable `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`
	Rate     *RateTable     `gorm:"foreignKey:RateID;references:ID" json:"rate,omitempty"`

	RatePosition int `gorm:"column:rate_position;not null;default:0" json:"rate_position"`
}

func (DraftRateJoinTable) TableName() string { return "draft_rate_join" }
