package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/mcreview/mcreview-backend/internal/platform/envutil"
	"github.com/mcreview/mcreview-backend/internal/platform/logger"
	"github.com/mcreview/mcreview-backend/internal/store"
	"github.com/mcreview/mcreview-backend/internal/types"
)

// Legacy rates submitted before submission packages existed have no
// SubmittedContracts on their first submission event, so parent resolution
// fails with an invariant error. This command derives the parent from the
// earliest contract-side link row and writes the missing package rows.

type idList []string

func (l *idList) String() string { return strings.Join(*l, ",") }
func (l *idList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v != "" {
		*l = append(*l, v)
	}
	return nil
}

func main() {
	var rateIDs idList
	var dryRun bool
	var limit int
	flag.Var(&rateIDs, "rate", "rate id to repair (repeatable; default all)")
	flag.BoolVar(&dryRun, "dry-run", false, "print planned repairs without writing")
	flag.IntVar(&limit, "limit", 0, "limit number of rates processed")
	flag.Parse()

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

	var rates []*types.RateTable
	q := db.Preload("Revisions.SubmitInfo").Preload("Revisions.SubmissionPackages")
	if len(rateIDs) > 0 {
		ids := make([]uuid.UUID, 0, len(rateIDs))
		for _, s := range rateIDs {
			id, err := uuid.Parse(strings.TrimSpace(s))
			if err == nil && id != uuid.Nil {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			fmt.Println("no valid rate id values provided")
			return
		}
		q = q.Where("id IN ?", ids)
	}
	if err := q.Find(&rates).Error; err != nil {
		log.Fatal("load rates", "error", err)
	}
	if limit > 0 && len(rates) > limit {
		rates = rates[:limit]
	}

	repaired := 0
	for _, rate := range rates {
		rev := firstSubmittedRevisionMissingPackage(rate)
		if rev == nil {
			continue
		}

		var join types.RateRevisionsOnContractRevisionTable
		err := db.Where("rate_revision_id = ? AND is_removal = ?", rev.ID, false).
			Order("valid_after ASC").
			First(&join).Error
		if err != nil {
			log.Warn("no contract link found; cannot derive parent", "rate_id", rate.ID)
			continue
		}

		if dryRun {
			fmt.Printf("[dry-run] rate %s: write package submission=%s contract_revision=%s rate_revision=%s\n",
				rate.ID, rev.SubmitInfoID, join.ContractRevisionID, rev.ID)
			continue
		}

		pkg := types.SubmissionPackageTable{
			SubmissionID:       *rev.SubmitInfoID,
			ContractRevisionID: join.ContractRevisionID,
			RateRevisionID:     rev.ID,
			RatePosition:       0,
		}
		if err := db.Create(&pkg).Error; err != nil {
			log.Warn("write package row failed", "rate_id", rate.ID, "error", err)
			continue
		}
		repaired++
		fmt.Printf("repaired rate %s\n", rate.ID)
	}

	fmt.Printf("done; repaired=%d\n", repaired)
}

// firstSubmittedRevisionMissingPackage returns the earliest submitted
// revision that has no submission package rows, or nil when the rate is
// healthy or never submitted.
func firstSubmittedRevisionMissingPackage(rate *types.RateTable) *types.RateRevisionTable {
	var earliest *types.RateRevisionTable
	for i := range rate.Revisions {
		rev := &rate.Revisions[i]
		if rev.SubmitInfoID == nil || rev.SubmitInfo == nil {
			continue
		}
		if earliest == nil || rev.SubmitInfo.UpdatedAt.Before(earliest.SubmitInfo.UpdatedAt) {
			earliest = rev
		}
	}
	if earliest == nil || len(earliest.SubmissionPackages) > 0 {
		return nil
	}
	return earliest
}
