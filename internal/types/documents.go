package types

import (
	"time"

	"github.com/google/uuid"
)

// Document child tables. The table of origin fixes the domain document
// category, so no category column exists here.

type ContractDocumentTable struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContractRevisionID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_revision_id"`

	Name      string     `gorm:"column:name;not null" json:"name"`
	S3URL     string     `gorm:"column:s3_url;not null" json:"s3_url"`
	SHA256    string     `gorm:"column:sha256" json:"sha256"`
	DateAdded *time.Time `gorm:"column:date_added" json:"date_added,omitempty"`
	Position  int        `gorm:"column:position;not null;default:0" json:"position"`
}

func (ContractDocumentTable) TableName() string { return "contract_document" }

type ContractSupportingDocumentTable struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ContractRevisionID uuid.UUID `gorm:"type:uuid;not null;index" json:"contract_revision_id"`

	Name      string     `gorm:"column:name;not null" json:"name"`
	S3URL     string     `gorm:"column:s3_url;not null" json:"s3_url"`
	SHA256    string     `gorm:"column:sha256" json:"sha256"`
	DateAdded *time.Time `gorm:"column:date_added" json:"date_added,omitempty"`
	Position  int        `gorm:"column:position;not null;default:0" json:"position"`
}

func (ContractSupportingDocumentTable) TableName() string { return "contract_supporting_document" }

type RateDocumentTable struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RateRevisionID uuid.UUID `gorm:"type:uuid;not null;index" json:"rate_revision_id"`

	Name      string     `gorm:"column:name;not null" json:"name"`
	S3URL     string     `gorm:"column:s3_url;not null" json:"s3_url"`
	SHA256    string     `gorm:"column:sha256" json:"sha256"`
	DateAdded *time.Time `gorm:"column:date_added" json:"date_added,omitempty"`
	Position  int        `gorm:"column:position;not null;default:0" json:"position"`
}

func (RateDocumentTable) TableName() string { return "rate_document" }

type RateSupportingDocumentTable struct {
	ID             uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	RateRevisionID uuid.UUID `gorm:"type:uuid;not null;index" json:"rate_revision_id"`

	Name      string     `gorm:"column:name;not null" json:"name"`
	S3URL     string     `gorm:"column:s3_url;not null" json:"s3_url"`
	SHA256    string     `gorm:"column:sha256" json:"sha256"`
	DateAdded *time.Time `gorm:"column:date_added" json:"date_added,omitempty"`
	Position  int        `gorm:"column:position;not null;default:0" json:"position"`
}

func (RateSupportingDocumentTable) TableName() string { return "rate_supporting_document" }
