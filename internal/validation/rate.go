package validation

import (
	"fmt"

	"github.com/mcreview/mcreview-backend/internal/domain"
)

// RateFormData validates one rate revision's form data at the given tier.
func RateFormData(fd domain.RateFormData, tier Tier, flags Flags) error {
	var errs Errors

	rateFormats(fd, &errs)
	if tier == TierDraft {
		return errs.orNil()
	}

	rateSubmitRequirements(fd, &errs)
	return errs.orNil()
}

func rateFormats(fd domain.RateFormData, errs *Errors) {
	for i, c := range fd.CertifyingActuaryContacts {
		if c.Email != "" && !validEmail(c.Email) {
			errs.add(fmt.Sprintf("certifyingActuaryContacts.%d.email", i), "must be a valid email address")
		}
	}
	for i, c := range fd.AddtlActuaryContacts {
		if c.Email != "" && !validEmail(c.Email) {
			errs.add(fmt.Sprintf("addtlActuaryContacts.%d.email", i), "must be a valid email address")
		}
	}
	for i, d := range fd.RateDocuments {
		if d.S3URL != "" && !validURL(d.S3URL) {
			errs.add(fmt.Sprintf("rateDocuments.%d.s3URL", i), "must be a valid URL")
		}
	}
	if !datesOrdered(fd.RateDateStart, fd.RateDateEnd) {
		errs.add("rateDateEnd", "must be on or after the rating period start date")
	}
	if !datesOrdered(fd.AmendmentEffectiveDateStart, fd.AmendmentEffectiveDateEnd) {
		errs.add("amendmentEffectiveDateEnd", "must be on or after the amendment effective start date")
	}
}

func rateSubmitRequirements(fd domain.RateFormData, errs *Errors) {
	if fd.RateType == nil {
		errs.add("rateType", "rate certification type is required")
	}
	if fd.RateCapitationType == nil {
		errs.add("rateCapitationType", "rate capitation type is required")
	}
	if len(fd.RateDocuments) == 0 {
		errs.add("rateDocuments", "at least one rate certification document is required")
	}
	if fd.RateDateStart == nil {
		errs.add("rateDateStart", "rating period start date is required")
	}
	if fd.RateDateEnd == nil {
		errs.add("rateDateEnd", "rating period end date is required")
	}
	if fd.RateDateCertified == nil {
		errs.add("rateDateCertified", "rate certification date is required")
	}
	if len(fd.RateProgramIDs) == 0 {
		errs.add("rateProgramIDs", "at least one rate program is required")
	}
	if len(fd.CertifyingActuaryContacts) == 0 {
		errs.add("certifyingActuaryContacts", "at least one certifying actuary is required")
	}
	for i, c := range fd.CertifyingActuaryContacts {
		if c.Name == "" {
			errs.add(fmt.Sprintf("certifyingActuaryContacts.%d.name", i), "actuary name is required")
		}
		if c.Email == "" {
			errs.add(fmt.Sprintf("certifyingActuaryContacts.%d.email", i), "actuary email is required")
		}
		if c.ActuarialFirm == nil {
			errs.add(fmt.Sprintf("certifyingActuaryContacts.%d.actuarialFirm", i), "actuarial firm is required")
		} else if *c.ActuarialFirm == domain.FirmOther && (c.ActuarialFirmOther == nil || *c.ActuarialFirmOther == "") {
			errs.add(fmt.Sprintf("certifyingActuaryContacts.%d.actuarialFirmOther", i), "firm name is required when the firm is OTHER")
		}
	}
	if fd.ActuaryCommunicationPreference == nil {
		errs.add("actuaryCommunicationPreference", "actuary communication preference is required")
	}

	if fd.RateType != nil && *fd.RateType == domain.RateAmendment {
		if fd.AmendmentEffectiveDateStart == nil {
			errs.add("amendmentEffectiveDateStart", "amendment effective start date is required for rate amendments")
		}
		if fd.AmendmentEffectiveDateEnd == nil {
			errs.add("amendmentEffectiveDateEnd", "amendment effective end date is required for rate amendments")
		}
	}
}
