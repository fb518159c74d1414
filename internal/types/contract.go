package types

import (
	"time"

	"github.com/google/uuid"
)

// ContractTable is the top-level submittable unit for a state.
type ContractTable struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StateCode   string    `gorm:"column:state_code;not null;uniqueIndex:idx_contract_state_number" json:"state_code"`
	StateNumber int       `gorm:"column:state_number;not null;uniqueIndex:idx_contract_state_number" json:"state_number"`

	Revisions []ContractRevisionTable `gorm:"foreignKey:ContractID" json:"revisions,omitempty"`

	// Rates linked to this contract's current draft.
	DraftRateJoins []DraftRateJoinTable `gorm:"foreignKey:ContractID" json:"draft_rate_joins,omitempty"`

	ReviewStatusActions []ContractReviewStatusActionTable `gorm:"foreignKey:ContractID" json:"review_status_actions,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ContractTable) TableName() string { return "contract" }

// ContractReviewStatusActionTable records a CMS reviewer action against a
// contract, outside the revision lifecycle.
type ContractReviewStatusActionTable struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContractID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_id"`

	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
	UpdatedBy     string    `gorm:"column:updated_by;not null" json:"updated_by"`
	UpdatedReason string    `gorm:"column:updated_reason;not null" json:"updated_reason"`
	ActionType    string    `gorm:"column:action_type;not null" json:"action_type"`
}

func (ContractReviewStatusActionTable) TableName() string { return "contract_review_status_action" }
