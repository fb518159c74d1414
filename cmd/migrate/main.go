package main

import (
	"fmt"
	"os"

	"github.com/mcreview/mcreview-backend/internal/platform/envutil"
	"github.com/mcreview/mcreview-backend/internal/platform/logger"
	"github.com/mcreview/mcreview-backend/internal/store"
)

func main() {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		fmt.Printf("init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	db, err := store.NewPostgresDB(log)
	if err != nil {
		log.Fatal("connect to postgres", "error", err)
	}

	if err := store.AutoMigrateAll(db); err != nil {
		log.Fatal("migrate schema", "error", err)
	}
	log.Info("schema migrated")
}
