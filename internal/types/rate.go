package types

import (
	"time"

	"github.com/google/uuid"
)

// RateTable is a rate certification, shareable across contracts.
type RateTable struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	StateCode   string    `gorm:"column:state_code;not null;uniqueIndex:idx_rate_state_number" json:"state_code"`
	StateNumber int       `gorm:"column:state_number;not null;uniqueIndex:idx_rate_state_number" json:"state_number"`

	Revisions []RateRevisionTable `gorm:"foreignKey:RateID" json:"revisions,omitempty"`

	// Contracts whose current draft links this rate.
	DraftContractJoins []DraftRateJoinTable `gorm:"foreignKey:RateID" json:"draft_contract_joins,omitempty"`

	ReviewStatusActions []RateReviewStatusActionTable `gorm:"foreignKey:RateID" json:"review_status_actions,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (RateTable) TableName() string { return "rate" }

// RateReviewStatusActionTable records a CMS reviewer action against a rate.
type RateReviewStatusActionTable struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RateID uuid.UUID `gorm:"type:uuid;not null;index" json:"rate_id"`

	UpdatedAt     time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
	UpdatedBy     string    `gorm:"column:updated_by;not null" json:"updated_by"`
	UpdatedReason string    `gorm:"column:updated_reason;not null" json:"updated_reason"`
	ActionType    string    `gorm:"column:action_type;not null" json:"action_type"`
}

func (RateReviewStatusActionTable) TableName() string { return "rate_review_status_action" }
