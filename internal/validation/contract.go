package validation

import (
	"fmt"

	"github.com/mcreview/mcreview-backend/internal/domain"
)

// ContractFormData validates one contract revision's form data at the given
// tier. The identical payload can pass at draft tier and fail at submit tier;
// that asymmetry is the point of the tiers.
func ContractFormData(fd domain.ContractFormData, tier Tier, flags Flags) error {
	var errs Errors

	contractFormats(fd, &errs)
	if tier == TierDraft {
		return errs.orNil()
	}

	contractSubmitRequirements(fd, flags, &errs)
	if tier == TierSubmitEQRO {
		contractEQRORestrictions(fd, &errs)
	}
	return errs.orNil()
}

// ContractSubmission validates a full submission bundle: the contract's form
// data plus every draft rate being submitted alongside it. Cross-entity rules
// (the D-SNP population propagation) live here because they need both sides.
func ContractSubmission(fd domain.ContractFormData, draftRates []domain.RateFormData, tier Tier, flags Flags) error {
	var errs Errors

	if err := ContractFormData(fd, tier, flags); err != nil {
		if fieldErrs, ok := err.(Errors); ok {
			errs = append(errs, fieldErrs...)
		} else {
			return err
		}
	}

	rateTier := tier
	if rateTier == TierSubmitEQRO {
		rateTier = TierSubmit
	}
	for i, rate := range draftRates {
		if err := RateFormData(rate, rateTier, flags); err != nil {
			if fieldErrs, ok := err.(Errors); ok {
				for _, fe := range fieldErrs {
					errs.add(fmt.Sprintf("rateRevisions.%d.%s", i, fe.Field), fe.Message)
				}
			} else {
				return err
			}
		}
	}

	if tier != TierDraft && flags.DSNPEnabled && fd.DSNPContract != nil && *fd.DSNPContract {
		for i, rate := range draftRates {
			if len(rate.MedicaidPopulations) == 0 {
				errs.add(
					fmt.Sprintf("rateRevisions.%d.medicaidPopulations", i),
					"medicaid populations are required for rates on a D-SNP contract",
				)
			}
		}
	}

	return errs.orNil()
}

// contractFormats holds the draft-tier checks: shape of what is present,
// never presence itself.
func contractFormats(fd domain.ContractFormData, errs *Errors) {
	for i, c := range fd.StateContacts {
		if c.Email != "" && !validEmail(c.Email) {
			errs.add(fmt.Sprintf("stateContacts.%d.email", i), "must be a valid email address")
		}
	}
	for i, d := range fd.ContractDocuments {
		if d.S3URL != "" && !validURL(d.S3URL) {
			errs.add(fmt.Sprintf("contractDocuments.%d.s3URL", i), "must be a valid URL")
		}
	}
	for i, d := range fd.SupportingDocuments {
		if d.S3URL != "" && !validURL(d.S3URL) {
			errs.add(fmt.Sprintf("supportingDocuments.%d.s3URL", i), "must be a valid URL")
		}
	}
	if !datesOrdered(fd.ContractDateStart, fd.ContractDateEnd) {
		errs.add("contractDateEnd", "must be on or after the contract start date")
	}
}

func contractSubmitRequirements(fd domain.ContractFormData, flags Flags, errs *Errors) {
	if len(fd.ProgramIDs) == 0 {
		errs.add("programIDs", "at least one program is required")
	}
	if fd.PopulationCovered == nil {
		errs.add("populationCovered", "population covered is required")
	}
	if fd.SubmissionType == "" {
		errs.add("submissionType", "submission type is required")
	}
	if fd.RiskBasedContract == nil {
		errs.add("riskBasedContract", "risk based contract answer is required")
	}
	if fd.SubmissionDescription == "" {
		errs.add("submissionDescription", "submission description is required")
	}
	if len(fd.StateContacts) == 0 {
		errs.add("stateContacts", "at least one state contact is required")
	}
	for i, c := range fd.StateContacts {
		if c.Name == "" {
			errs.add(fmt.Sprintf("stateContacts.%d.name", i), "contact name is required")
		}
		if c.Email == "" {
			errs.add(fmt.Sprintf("stateContacts.%d.email", i), "contact email is required")
		}
	}
	if fd.ContractType == "" {
		errs.add("contractType", "contract type is required")
	}
	if fd.ContractExecutionStatus == nil {
		errs.add("contractExecutionStatus", "contract execution status is required")
	}
	if len(fd.ContractDocuments) == 0 {
		errs.add("contractDocuments", "at least one contract document is required")
	}
	if fd.ContractDateStart == nil {
		errs.add("contractDateStart", "contract start date is required")
	}
	if fd.ContractDateEnd == nil {
		errs.add("contractDateEnd", "contract end date is required")
	}
	if len(fd.ManagedCareEntities) == 0 {
		errs.add("managedCareEntities", "at least one managed care entity is required")
	}
	if len(fd.FederalAuthorities) == 0 {
		errs.add("federalAuthorities", "at least one federal authority is required")
	}

	if fd.PopulationCovered != nil && *fd.PopulationCovered == domain.PopulationCHIP &&
		fd.SubmissionType == domain.SubmissionContractAndRates {
		errs.add("submissionType", "populations covered by CHIP cannot be submitted with a contract and rates submission")
	}

	if flags.Require438Attestation {
		if fd.StatutoryRegulatoryAttestation == nil {
			errs.add("statutoryRegulatoryAttestation", "the 438 attestation answer is required")
		} else if *fd.StatutoryRegulatoryAttestation {
			if fd.StatutoryRegulatoryAttestationDescription != nil {
				errs.add("statutoryRegulatoryAttestationDescription", "must be blank when the contract is attested as compliant")
			}
		} else if fd.StatutoryRegulatoryAttestationDescription == nil || *fd.StatutoryRegulatoryAttestationDescription == "" {
			errs.add("statutoryRegulatoryAttestationDescription", "a description of non-compliance is required")
		}
	}

	if flags.DSNPEnabled && fd.DSNPContract == nil && hasDSNPAuthority(fd.FederalAuthorities) {
		errs.add("dsnpContract", "the D-SNP contract answer is required for the selected federal authorities")
	}
}

// contractEQRORestrictions inverts requiredness: provision and attestation
// fields do not apply to EQRO submissions and must be absent.
func contractEQRORestrictions(fd domain.ContractFormData, errs *Errors) {
	type restricted struct {
		field string
		set   bool
	}
	fields := []restricted{
		{"inLieuServicesAndSettings", fd.InLieuServicesAndSettings != nil},
		{"modifiedBenefitsProvided", fd.ModifiedBenefitsProvided != nil},
		{"modifiedGeoAreaServed", fd.ModifiedGeoAreaServed != nil},
		{"modifiedMedicaidBeneficiaries", fd.ModifiedMedicaidBeneficiaries != nil},
		{"modifiedRiskSharingStrategy", fd.ModifiedRiskSharingStrategy != nil},
		{"modifiedIncentiveArrangements", fd.ModifiedIncentiveArrangements != nil},
		{"modifiedStateDirectedPayments", fd.ModifiedStateDirectedPayments != nil},
		{"modifiedPassThroughPayments", fd.ModifiedPassThroughPayments != nil},
		{"modifiedNetworkAdequacyStandards", fd.ModifiedNetworkAdequacyStandards != nil},
		{"modifiedLengthOfContract", fd.ModifiedLengthOfContract != nil},
		{"statutoryRegulatoryAttestation", fd.StatutoryRegulatoryAttestation != nil},
		{"statutoryRegulatoryAttestationDescription", fd.StatutoryRegulatoryAttestationDescription != nil},
	}
	for _, f := range fields {
		if f.set {
			errs.add(f.field, "does not apply to EQRO submissions and must be blank")
		}
	}
}

func hasDSNPAuthority(authorities []domain.FederalAuthority) bool {
	for _, a := range authorities {
		for _, d := range domain.DSNPAuthorities {
			if a == d {
				return true
			}
		}
	}
	return false
}
