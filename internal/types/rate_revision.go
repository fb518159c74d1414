package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RateRevisionTable is one versioned snapshot of a rate certification.
type RateRevisionTable struct {
	ID     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RateID uuid.UUID  `gorm:"type:uuid;not null;index" json:"rate_id"`
	Rate   *RateTable `gorm:"foreignKey:RateID;references:ID" json:"rate,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	SubmitInfoID *uuid.UUID       `gorm:"type:uuid;index" json:"submit_info_id,omitempty"`
	SubmitInfo   *UpdateInfoTable `gorm:"foreignKey:SubmitInfoID;references:ID" json:"submit_info,omitempty"`
	UnlockInfoID *uuid.UUID       `gorm:"type:uuid" json:"unlock_info_id,omitempty"`
	UnlockInfo   *UpdateInfoTable `gorm:"foreignKey:UnlockInfoID;references:ID" json:"unlock_info,omitempty"`

	RateType           *string `gorm:"column:rate_type" json:"rate_type,omitempty"`
	RateCapitationType *string `gorm:"column:rate_capitation_type" json:"rate_capitation_type,omitempty"`

	RateDateStart     *time.Time `gorm:"column:rate_date_start" json:"rate_date_start,omitempty"`
	RateDateEnd       *time.Time `gorm:"column:rate_date_end" json:"rate_date_end,omitempty"`
	RateDateCertified *time.Time `gorm:"column:rate_date_certified" json:"rate_date_certified,omitempty"`

	AmendmentEffectiveDateStart *time.Time `gorm:"column:amendment_effective_date_start" json:"amendment_effective_date_start,omitempty"`
	AmendmentEffectiveDateEnd   *time.Time `gorm:"column:amendment_effective_date_end" json:"amendment_effective_date_end,omitempty"`

	RateProgramIDs        datatypes.JSON `gorm:"column:rate_program_ids;type:jsonb" json:"rate_program_ids"`
	RateCertificationName *string        `gorm:"column:rate_certification_name" json:"rate_certification_name,omitempty"`
	MedicaidPopulations   datatypes.JSON `gorm:"column:medicaid_populations;type:jsonb" json:"medicaid_populations"`

	ActuaryCommunicationPreference *string `gorm:"column:actuary_communication_preference" json:"actuary_communication_preference,omitempty"`

	RateDocuments       []RateDocumentTable           `gorm:"foreignKey:RateRevisionID" json:"rate_documents,omitempty"`
	SupportingDocuments []RateSupportingDocumentTable `gorm:"foreignKey:RateRevisionID" json:"supporting_documents,omitempty"`
	ActuaryContacts     []ActuaryContactTable         `gorm:"foreignKey:RateRevisionID" json:"actuary_contacts,omitempty"`

	// Every submission package that carried this revision, including later
	// contract submissions that re-bundled it.
	SubmissionPackages []SubmissionPackageTable `gorm:"foreignKey:RateRevisionID" json:"submission_packages,omitempty"`
}

func (RateRevisionTable) TableName() string { return "rate_revision" }
