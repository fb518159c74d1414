package history

import (
	"encoding/json"
	"sort"

	"gorm.io/datatypes"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
)

// Form-data projection: pure mapping from persisted revision rows to domain
// form data. Null columns become absent domain optionals here and nowhere
// else; nothing is coerced to a zero value that would change business
// meaning. Structural problems are left for the validation tiers.

// ContractRevisionFormData projects a persisted contract revision row to its
// domain form data. The store uses it to carry submitted data forward into a
// fresh draft on unlock.
func ContractRevisionFormData(rev *types.ContractRevisionTable) domain.ContractFormData {
	return contractFormDataToDomain(rev)
}

// RateRevisionFormData is the rate-side counterpart of
// ContractRevisionFormData.
func RateRevisionFormData(rev *types.RateRevisionTable) domain.RateFormData {
	return rateFormDataToDomain(rev)
}

func contractFormDataToDomain(rev *types.ContractRevisionTable) domain.ContractFormData {
	fd := domain.ContractFormData{
		ProgramIDs:            stringList(rev.ProgramIDs),
		SubmissionType:        domain.SubmissionType(rev.SubmissionType),
		RiskBasedContract:     rev.RiskBasedContract,
		SubmissionDescription: rev.SubmissionDescription,

		ContractType:      domain.ContractCategory(rev.ContractType),
		ContractDateStart: rev.ContractDateStart,
		ContractDateEnd:   rev.ContractDateEnd,

		InLieuServicesAndSettings:        rev.InLieuServicesAndSettings,
		ModifiedBenefitsProvided:         rev.ModifiedBenefitsProvided,
		ModifiedGeoAreaServed:            rev.ModifiedGeoAreaServed,
		ModifiedMedicaidBeneficiaries:    rev.ModifiedMedicaidBeneficiaries,
		ModifiedRiskSharingStrategy:      rev.ModifiedRiskSharingStrategy,
		ModifiedIncentiveArrangements:    rev.ModifiedIncentiveArrangements,
		ModifiedStateDirectedPayments:    rev.ModifiedStateDirectedPayments,
		ModifiedPassThroughPayments:      rev.ModifiedPassThroughPayments,
		ModifiedNetworkAdequacyStandards: rev.ModifiedNetworkAdequacyStandards,
		ModifiedLengthOfContract:         rev.ModifiedLengthOfContract,

		StatutoryRegulatoryAttestation:            rev.StatutoryRegulatoryAttestation,
		StatutoryRegulatoryAttestationDescription: rev.StatutoryRegulatoryAttestationDescription,

		DSNPContract: rev.DSNPContract,
	}

	if rev.PopulationCovered != nil {
		pc := domain.PopulationCovered(*rev.PopulationCovered)
		fd.PopulationCovered = &pc
	}
	if rev.ContractExecutionStatus != nil {
		es := domain.ContractExecutionStatus(*rev.ContractExecutionStatus)
		fd.ContractExecutionStatus = &es
	}
	for _, e := range stringList(rev.ManagedCareEntities) {
		fd.ManagedCareEntities = append(fd.ManagedCareEntities, domain.ManagedCareEntity(e))
	}
	for _, a := range stringList(rev.FederalAuthorities) {
		fd.FederalAuthorities = append(fd.FederalAuthorities, domain.FederalAuthority(a))
	}

	fd.StateContacts = stateContactsToDomain(rev.StateContacts)
	fd.ContractDocuments = contractDocumentsToDomain(rev.ContractDocuments)
	fd.SupportingDocuments = contractSupportingDocumentsToDomain(rev.SupportingDocuments)

	return fd
}

func rateFormDataToDomain(rev *types.RateRevisionTable) domain.RateFormData {
	fd := domain.RateFormData{
		RateDateStart:     rev.RateDateStart,
		RateDateEnd:       rev.RateDateEnd,
		RateDateCertified: rev.RateDateCertified,

		AmendmentEffectiveDateStart: rev.AmendmentEffectiveDateStart,
		AmendmentEffectiveDateEnd:   rev.AmendmentEffectiveDateEnd,

		RateProgramIDs:        stringList(rev.RateProgramIDs),
		RateCertificationName: rev.RateCertificationName,
	}

	if rev.RateType != nil {
		rt := domain.RateCertType(*rev.RateType)
		fd.RateType = &rt
	}
	if rev.RateCapitationType != nil {
		ct := domain.RateCapitationType(*rev.RateCapitationType)
		fd.RateCapitationType = &ct
	}
	if rev.ActuaryCommunicationPreference != nil {
		ac := domain.ActuaryCommunication(*rev.ActuaryCommunicationPreference)
		fd.ActuaryCommunicationPreference = &ac
	}
	for _, p := range stringList(rev.MedicaidPopulations) {
		fd.MedicaidPopulations = append(fd.MedicaidPopulations, domain.MedicaidPopulation(p))
	}

	fd.RateDocuments = rateDocumentsToDomain(rev.RateDocuments)
	fd.SupportingDocuments = rateSupportingDocumentsToDomain(rev.SupportingDocuments)

	certifying, addtl := actuaryContactsToDomain(rev.ActuaryContacts)
	fd.CertifyingActuaryContacts = certifying
	fd.AddtlActuaryContacts = addtl

	return fd
}

func contractRevisionToDomain(rev *types.ContractRevisionTable) domain.ContractRevision {
	return domain.ContractRevision{
		ID:         rev.ID,
		ContractID: rev.ContractID,
		CreatedAt:  rev.CreatedAt,
		UpdatedAt:  rev.UpdatedAt,
		SubmitInfo: updateInfoToDomain(rev.SubmitInfo),
		UnlockInfo: updateInfoToDomain(rev.UnlockInfo),
		FormData:   contractFormDataToDomain(rev),
	}
}

func rateRevisionToDomain(rev *types.RateRevisionTable) domain.RateRevision {
	return domain.RateRevision{
		ID:         rev.ID,
		RateID:     rev.RateID,
		CreatedAt:  rev.CreatedAt,
		UpdatedAt:  rev.UpdatedAt,
		SubmitInfo: updateInfoToDomain(rev.SubmitInfo),
		UnlockInfo: updateInfoToDomain(rev.UnlockInfo),
		FormData:   rateFormDataToDomain(rev),
	}
}

func updateInfoToDomain(info *types.UpdateInfoTable) *domain.UpdateInfo {
	if info == nil {
		return nil
	}
	return &domain.UpdateInfo{
		UpdatedAt:     info.UpdatedAt,
		UpdatedBy:     info.UpdatedBy,
		UpdatedReason: info.UpdatedReason,
	}
}

func contractReviewActionsToDomain(actions []types.ContractReviewStatusActionTable) []domain.ReviewStatusAction {
	out := make([]domain.ReviewStatusAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, domain.ReviewStatusAction{
			UpdatedAt:     a.UpdatedAt,
			UpdatedBy:     a.UpdatedBy,
			UpdatedReason: a.UpdatedReason,
			ActionType:    domain.ReviewActionType(a.ActionType),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

func rateReviewActionsToDomain(actions []types.RateReviewStatusActionTable) []domain.ReviewStatusAction {
	out := make([]domain.ReviewStatusAction, 0, len(actions))
	for _, a := range actions {
		out = append(out, domain.ReviewStatusAction{
			UpdatedAt:     a.UpdatedAt,
			UpdatedBy:     a.UpdatedBy,
			UpdatedReason: a.UpdatedReason,
			ActionType:    domain.ReviewActionType(a.ActionType),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out
}

func stateContactsToDomain(rows []types.StateContactTable) []domain.StateContact {
	ordered := make([]types.StateContactTable, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	out := make([]domain.StateContact, 0, len(ordered))
	for _, c := range ordered {
		out = append(out, domain.StateContact{Name: c.Name, TitleRole: c.TitleRole, Email: c.Email})
	}
	return out
}

func actuaryContactsToDomain(rows []types.ActuaryContactTable) (certifying, addtl []domain.ActuaryContact) {
	ordered := make([]types.ActuaryContactTable, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	for _, c := range ordered {
		contact := domain.ActuaryContact{Name: c.Name, TitleRole: c.TitleRole, Email: c.Email}
		if c.ActuarialFirm != nil {
			firm := domain.ActuarialFirm(*c.ActuarialFirm)
			contact.ActuarialFirm = &firm
		}
		contact.ActuarialFirmOther = c.ActuarialFirmOther
		if c.ContactType == types.ActuaryContactTypeAdditional {
			addtl = append(addtl, contact)
		} else {
			certifying = append(certifying, contact)
		}
	}
	return certifying, addtl
}

func contractDocumentsToDomain(rows []types.ContractDocumentTable) []domain.Document {
	ordered := make([]types.ContractDocumentTable, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	out := make([]domain.Document, 0, len(ordered))
	for _, d := range ordered {
		out = append(out, domain.Document{
			Name:             d.Name,
			S3URL:            d.S3URL,
			SHA256:           d.SHA256,
			DateAdded:        d.DateAdded,
			DocumentCategory: domain.DocCategoryContract,
		})
	}
	return out
}

func contractSupportingDocumentsToDomain(rows []types.ContractSupportingDocumentTable) []domain.Document {
	ordered := make([]types.ContractSupportingDocumentTable, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	out := make([]domain.Document, 0, len(ordered))
	for _, d := range ordered {
		out = append(out, domain.Document{
			Name:             d.Name,
			S3URL:            d.S3URL,
			SHA256:           d.SHA256,
			DateAdded:        d.DateAdded,
			DocumentCategory: domain.DocCategoryContractRelated,
		})
	}
	return out
}

func rateDocumentsToDomain(rows []types.RateDocumentTable) []domain.Document {
	ordered := make([]types.RateDocumentTable, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	out := make([]domain.Document, 0, len(ordered))
	for _, d := range ordered {
		out = append(out, domain.Document{
			Name:             d.Name,
			S3URL:            d.S3URL,
			SHA256:           d.SHA256,
			DateAdded:        d.DateAdded,
			DocumentCategory: domain.DocCategoryRates,
		})
	}
	return out
}

func rateSupportingDocumentsToDomain(rows []types.RateSupportingDocumentTable) []domain.Document {
	ordered := make([]types.RateSupportingDocumentTable, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Position < ordered[j].Position })
	out := make([]domain.Document, 0, len(ordered))
	for _, d := range ordered {
		out = append(out, domain.Document{
			Name:             d.Name,
			S3URL:            d.S3URL,
			SHA256:           d.SHA256,
			DateAdded:        d.DateAdded,
			DocumentCategory: domain.DocCategoryRatesRelated,
		})
	}
	return out
}

// stringList decodes a JSON string array column. A malformed column projects
// to an empty list; the validation tiers flag missing required content.
func stringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
