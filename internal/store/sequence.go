package store

import (
	"gorm.io/gorm"
)

// Per-state sequence numbers increment atomically inside the caller's
// transaction, so concurrent submissions for one state never collide.

func nextStateSubmissionNumber(tx *gorm.DB, stateCode string) (int, error) {
	var n int
	err := tx.Raw(`
		INSERT INTO state (state_code, latest_state_submission_number, latest_state_rate_cert_number, updated_at)
		VALUES (?, 1, 0, CURRENT_TIMESTAMP)
		ON CONFLICT (state_code) DO UPDATE
			SET latest_state_submission_number = state.latest_state_submission_number + 1,
			    updated_at = CURRENT_TIMESTAMP
		RETURNING latest_state_submission_number`, stateCode).Scan(&n).Error
	if err != nil {
		return 0, mapDBError("store.nextStateSubmissionNumber", err)
	}
	return n, nil
}

func nextStateRateCertNumber(tx *gorm.DB, stateCode string) (int, error) {
	var n int
	err := tx.Raw(`
		INSERT INTO state (state_code, latest_state_submission_number, latest_state_rate_cert_number, updated_at)
		VALUES (?, 0, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (state_code) DO UPDATE
			SET latest_state_rate_cert_number = state.latest_state_rate_cert_number + 1,
			    updated_at = CURRENT_TIMESTAMP
		RETURNING latest_state_rate_cert_number`, stateCode).Scan(&n).Error
	if err != nil {
		return 0, mapDBError("store.nextStateRateCertNumber", err)
	}
	return n, nil
}
