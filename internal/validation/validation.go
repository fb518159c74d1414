package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Tier selects which optionality rules apply. Draft allows almost everything
// to be absent; Submit adds non-empty and cross-field requirements; the EQRO
// variant inverts requiredness on the provision/attestation fields.
type Tier int

const (
	TierDraft Tier = iota
	TierSubmit
	TierSubmitEQRO
)

// Flags are the feature gates that alter submit-time requirements. Flag
// resolution lives with the caller; only the resolved values arrive here.
type Flags struct {
	// Require438Attestation gates the 42 CFR 438 attestation requirement.
	Require438Attestation bool
	// DSNPEnabled gates the dual-eligible special needs plan questions.
	DSNPEnabled bool
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func validEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

func validURL(s string) bool {
	return validate.Var(s, "required,uri") == nil
}

func datesOrdered(start, end *time.Time) bool {
	if start == nil || end == nil {
		return true
	}
	return !end.Before(*start)
}
