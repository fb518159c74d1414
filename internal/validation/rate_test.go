package validation

import (
	"testing"
	"time"

	"github.com/mcreview/mcreview-backend/internal/domain"
)

// validRateFD returns rate form data that passes the submit tier.
func validRateFD() domain.RateFormData {
	rt := domain.RateNew
	capType := domain.CapitationRateCell
	comm := domain.ActuaryCommOACTToActuary
	firm := domain.FirmMercer
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, -1)
	certified := start.AddDate(0, -1, 0)
	return domain.RateFormData{
		RateType:           &rt,
		RateCapitationType: &capType,
		RateDocuments: []domain.Document{
			{Name: "certification.pdf", S3URL: "s3://bucket/certification.pdf", SHA256: "def"},
		},
		RateDateStart:     timep(start),
		RateDateEnd:       timep(end),
		RateDateCertified: timep(certified),
		RateProgramIDs:    []string{"pmap"},
		CertifyingActuaryContacts: []domain.ActuaryContact{
			{Name: "An Actuary", TitleRole: "Lead", Email: "actuary@example.com", ActuarialFirm: &firm},
		},
		ActuaryCommunicationPreference: &comm,
	}
}

func TestRateFormDataTiers(t *testing.T) {
	if err := RateFormData(domain.RateFormData{}, TierDraft, Flags{}); err != nil {
		t.Fatalf("empty rate form data must pass draft tier: %v", err)
	}
	if err := RateFormData(domain.RateFormData{}, TierSubmit, Flags{}); err == nil {
		t.Fatalf("empty rate form data must fail submit tier")
	}
	if err := RateFormData(validRateFD(), TierSubmit, Flags{}); err != nil {
		t.Fatalf("valid rate form data failed submit tier: %v", err)
	}
}

func TestRateDraftTierChecksDateOrder(t *testing.T) {
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	fd := domain.RateFormData{
		RateDateStart: timep(start),
		RateDateEnd:   timep(start.AddDate(0, 0, -1)),
	}
	err := RateFormData(fd, TierDraft, Flags{})
	if !hasField(t, err, "rateDateEnd") {
		t.Fatalf("inverted rating period should fail at draft tier: %v", err)
	}
}

func TestRateOtherFirmRequiresName(t *testing.T) {
	fd := validRateFD()
	other := domain.FirmOther
	fd.CertifyingActuaryContacts[0].ActuarialFirm = &other

	err := RateFormData(fd, TierSubmit, Flags{})
	if !hasField(t, err, "certifyingActuaryContacts.0.actuarialFirmOther") {
		t.Fatalf("OTHER firm without a name should fail: %v", err)
	}

	fd.CertifyingActuaryContacts[0].ActuarialFirmOther = strp("Smallco Actuarial")
	if err := RateFormData(fd, TierSubmit, Flags{}); err != nil {
		t.Fatalf("named OTHER firm should pass: %v", err)
	}
}

func TestRateAmendmentRequiresEffectiveDates(t *testing.T) {
	fd := validRateFD()
	amendment := domain.RateAmendment
	fd.RateType = &amendment

	err := RateFormData(fd, TierSubmit, Flags{})
	if !hasField(t, err, "amendmentEffectiveDateStart") || !hasField(t, err, "amendmentEffectiveDateEnd") {
		t.Fatalf("amendment without effective dates should fail: %v", err)
	}

	start := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	fd.AmendmentEffectiveDateStart = timep(start)
	fd.AmendmentEffectiveDateEnd = timep(start.AddDate(0, 6, 0))
	if err := RateFormData(fd, TierSubmit, Flags{}); err != nil {
		t.Fatalf("dated amendment should pass: %v", err)
	}
}
