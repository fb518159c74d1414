package types

import "github.com/google/uuid"

type StateContactTable struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContractRevisionID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_revision_id"`

	Name      string `gorm:"column:name" json:"name"`
	TitleRole string `gorm:"column:title_role" json:"title_role"`
	Email     string `gorm:"column:email" json:"email"`
	Position  int    `gorm:"column:position;not null;default:0" json:"position"`
}

func (StateContactTable) TableName() string { return "state_contact" }

// ActuaryContactTable holds certifying and additional actuaries for one rate
// revision, distinguished by ContactType.
type ActuaryContactTable struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RateRevisionID uuid.UUID `gorm:"type:uuid;not null;index" json:"rate_revision_id"`

	Name               string  `gorm:"column:name" json:"name"`
	TitleRole          string  `gorm:"column:title_role" json:"title_role"`
	Email              string  `gorm:"column:email" json:"email"`
	ActuarialFirm      *string `gorm:"column:actuarial_firm" json:"actuarial_firm,omitempty"`
	ActuarialFirmOther *string `gorm:"column:actuarial_firm_other" json:"actuarial_firm_other,omitempty"`

	ContactType string `gorm:"column:contact_type;not null;default:'CERTIFYING'" json:"contact_type"`
	Position    int    `gorm:"column:position;not null;default:0" json:"position"`
}

func (ActuaryContactTable) TableName() string { return "actuary_contact" }

const (
	ActuaryContactTypeCertifying = "CERTIFYING"
	ActuaryContactTypeAdditional = "ADDITIONAL"
)
