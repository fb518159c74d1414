package store

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/mcreview/mcreview-backend/internal/platform/envutil"
	"github.com/mcreview/mcreview-backend/internal/platform/logger"
	"github.com/mcreview/mcreview-backend/internal/types"
)

// NewPostgresDB connects using the POSTGRES_* environment variables.
func NewPostgresDB(log *logger.Logger) (*gorm.DB, error) {
	host := envutil.String("POSTGRES_HOST", "localhost")
	port := envutil.String("POSTGRES_PORT", "5432")
	user := envutil.String("POSTGRES_USER", "postgres")
	password := envutil.String("POSTGRES_PASSWORD", "")
	name := envutil.String("POSTGRES_NAME", "mcreview")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, name)

	log.Info("connecting to postgres", "host", host, "db", name)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return db, nil
}

// AutoMigrateAll migrates every submission-domain table.
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.StateTable{},
		&types.UpdateInfoTable{},
		&types.ContractTable{},
		&types.ContractRevisionTable{},
		&types.ContractDocumentTable{},
		&types.ContractSupportingDocumentTable{},
		&types.StateContactTable{},
		&types.ContractReviewStatusActionTable{},
		&types.RateTable{},
		&types.RateRevisionTable{},
		&types.RateDocumentTable{},
		&types.RateSupportingDocumentTable{},
		&types.ActuaryContactTable{},
		&types.RateReviewStatusActionTable{},
		&types.RateRevisionsOnContractRevisionTable{},
		&types.SubmissionPackageTable{},
		&types.DraftRateJoinTable{},
	)
}
