package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ContractRevisionTable is one versioned snapshot of a contract's form data.
// A null SubmitInfoID marks the contract's single current draft. Nullable
// columns stay nullable here; the history projector is the one place that
// turns null-for-clear into domain absence.
type ContractRevisionTable struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContractID uuid.UUID      `gorm:"type:uuid;not null;index" json:"contract_id"`
	Contract   *ContractTable `gorm:"foreignKey:ContractID;references:ID" json:"contract,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	SubmitInfoID *uuid.UUID       `gorm:"type:uuid;index" json:"submit_info_id,omitempty"`
	SubmitInfo   *UpdateInfoTable `gorm:"foreignKey:SubmitInfoID;references:ID" json:"submit_info,omitempty"`
	UnlockInfoID *uuid.UUID       `gorm:"type:uuid" json:"unlock_info_id,omitempty"`
	UnlockInfo   *UpdateInfoTable `gorm:"foreignKey:UnlockInfoID;references:ID" json:"unlock_info,omitempty"`

	ProgramIDs            datatypes.JSON `gorm:"column:program_ids;type:jsonb" json:"program_ids"`
	PopulationCovered     *string        `gorm:"column:population_covered" json:"population_covered,omitempty"`
	SubmissionType        string         `gorm:"column:submission_type;not null" json:"submission_type"`
	RiskBasedContract     *bool          `gorm:"column:risk_based_contract" json:"risk_based_contract,omitempty"`
	SubmissionDescription string         `gorm:"column:submission_description" json:"submission_description"`

	ContractType            string         `gorm:"column:contract_type;not null" json:"contract_type"`
	ContractExecutionStatus *string        `gorm:"column:contract_execution_status" json:"contract_execution_status,omitempty"`
	ContractDateStart       *time.Time     `gorm:"column:contract_date_start" json:"contract_date_start,omitempty"`
	ContractDateEnd         *time.Time     `gorm:"column:contract_date_end" json:"contract_date_end,omitempty"`
	ManagedCareEntities     datatypes.JSON `gorm:"column:managed_care_entities;type:jsonb" json:"managed_care_entities"`
	FederalAuthorities      datatypes.JSON `gorm:"column:federal_authorities;type:jsonb" json:"federal_authorities"`

	InLieuServicesAndSettings        *bool `gorm:"column:in_lieu_services_and_settings" json:"in_lieu_services_and_settings,omitempty"`
	ModifiedBenefitsProvided         *bool `gorm:"column:modified_benefits_provided" json:"modified_benefits_provided,omitempty"`
	ModifiedGeoAreaServed            *bool `gorm:"column:modified_geo_area_served" json:"modified_geo_area_served,omitempty"`
	ModifiedMedicaidBeneficiaries    *bool `gorm:"column:modified_medicaid_beneficiaries" json:"modified_medicaid_beneficiaries,omitempty"`
	ModifiedRiskSharingStrategy      *bool `gorm:"column:modified_risk_sharing_strategy" json:"modified_risk_sharing_strategy,omitempty"`
	ModifiedIncentiveArrangements    *bool `gorm:"column:modified_incentive_arrangements" json:"modified_incentive_arrangements,omitempty"`
	ModifiedStateDirectedPayments    *bool `gorm:"column:modified_state_directed_payments" json:"modified_state_directed_payments,omitempty"`
	ModifiedPassThroughPayments      *bool `gorm:"column:modified_pass_through_payments" json:"modified_pass_through_payments,omitempty"`
	ModifiedNetworkAdequacyStandards *bool `gorm:"column:modified_network_adequacy_standards" json:"modified_network_adequacy_standards,omitempty"`
	ModifiedLengthOfContract         *bool `gorm:"column:modified_length_of_contract" json:"modified_length_of_contract,omitempty"`

	StatutoryRegulatoryAttestation            *bool   `gorm:"column:statutory_regulatory_attestation" json:"statutory_regulatory_attestation,omitempty"`
	StatutoryRegulatoryAttestationDescription *string `gorm:"column:statutory_regulatory_attestation_description" json:"statutory_regulatory_attestation_description,omitempty"`

	DSNPContract *bool `gorm:"column:dsnp_contract" json:"dsnp_contract,omitempty"`

	ContractDocuments   []ContractDocumentTable           `gorm:"foreignKey:ContractRevisionID" json:"contract_documents,omitempty"`
	SupportingDocuments []ContractSupportingDocumentTable `gorm:"foreignKey:ContractRevisionID" json:"supporting_documents,omitempty"`
	StateContacts       []StateContactTable               `gorm:"foreignKey:ContractRevisionID" json:"state_contacts,omitempty"`

	// Rate linkage history for this revision, ordered by ValidAfter.
	RateRevisionJoins []RateRevisionsOnContractRevisionTable `gorm:"foreignKey:ContractRevisionID" json:"rate_revision_joins,omitempty"`
}

func (ContractRevisionTable) TableName() string { return "contract_revision" }
