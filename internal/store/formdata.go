package store

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/mcreview/mcreview-backend/internal/domain"
	"github.com/mcreview/mcreview-backend/internal/types"
)

// Writers from domain form data back onto revision rows. The domain absent
// value maps to a null column; the store never invents a zero value.

func applyContractFormData(rev *types.ContractRevisionTable, fd domain.ContractFormData) {
	rev.ProgramIDs = jsonStringList(fd.ProgramIDs)
	rev.PopulationCovered = stringPtr((*string)(fd.PopulationCovered))
	rev.SubmissionType = string(fd.SubmissionType)
	rev.RiskBasedContract = fd.RiskBasedContract
	rev.SubmissionDescription = fd.SubmissionDescription

	rev.ContractType = string(fd.ContractType)
	rev.ContractExecutionStatus = stringPtr((*string)(fd.ContractExecutionStatus))
	rev.ContractDateStart = fd.ContractDateStart
	rev.ContractDateEnd = fd.ContractDateEnd

	entities := make([]string, 0, len(fd.ManagedCareEntities))
	for _, e := range fd.ManagedCareEntities {
		entities = append(entities, string(e))
	}
	rev.ManagedCareEntities = jsonStringList(entities)

	authorities := make([]string, 0, len(fd.FederalAuthorities))
	for _, a := range fd.FederalAuthorities {
		authorities = append(authorities, string(a))
	}
	rev.FederalAuthorities = jsonStringList(authorities)

	rev.InLieuServicesAndSettings = fd.InLieuServicesAndSettings
	rev.ModifiedBenefitsProvided = fd.ModifiedBenefitsProvided
	rev.ModifiedGeoAreaServed = fd.ModifiedGeoAreaServed
	rev.ModifiedMedicaidBeneficiaries = fd.ModifiedMedicaidBeneficiaries
	rev.ModifiedRiskSharingStrategy = fd.ModifiedRiskSharingStrategy
	rev.ModifiedIncentiveArrangements = fd.ModifiedIncentiveArrangements
	rev.ModifiedStateDirectedPayments = fd.ModifiedStateDirectedPayments
	rev.ModifiedPassThroughPayments = fd.ModifiedPassThroughPayments
	rev.ModifiedNetworkAdequacyStandards = fd.ModifiedNetworkAdequacyStandards
	rev.ModifiedLengthOfContract = fd.ModifiedLengthOfContract

	rev.StatutoryRegulatoryAttestation = fd.StatutoryRegulatoryAttestation
	rev.StatutoryRegulatoryAttestationDescription = fd.StatutoryRegulatoryAttestationDescription

	rev.DSNPContract = fd.DSNPContract

	rev.ContractDocuments = contractDocumentRows(rev, fd.ContractDocuments)
	rev.SupportingDocuments = contractSupportingDocumentRows(rev, fd.SupportingDocuments)
	rev.StateContacts = stateContactRows(rev, fd.StateContacts)
}

func applyRateFormData(rev *types.RateRevisionTable, fd domain.RateFormData) {
	rev.RateType = stringPtr((*string)(fd.RateType))
	rev.RateCapitationType = stringPtr((*string)(fd.RateCapitationType))

	rev.RateDateStart = fd.RateDateStart
	rev.RateDateEnd = fd.RateDateEnd
	rev.RateDateCertified = fd.RateDateCertified

	rev.AmendmentEffectiveDateStart = fd.AmendmentEffectiveDateStart
	rev.AmendmentEffectiveDateEnd = fd.AmendmentEffectiveDateEnd

	rev.RateProgramIDs = jsonStringList(fd.RateProgramIDs)
	rev.RateCertificationName = fd.RateCertificationName

	populations := make([]string, 0, len(fd.MedicaidPopulations))
	for _, p := range fd.MedicaidPopulations {
		populations = append(populations, string(p))
	}
	rev.MedicaidPopulations = jsonStringList(populations)

	rev.ActuaryCommunicationPreference = stringPtr((*string)(fd.ActuaryCommunicationPreference))

	rev.RateDocuments = rateDocumentRows(rev, fd.RateDocuments)
	rev.SupportingDocuments = rateSupportingDocumentRows(rev, fd.SupportingDocuments)
	rev.ActuaryContacts = actuaryContactRows(rev, fd.CertifyingActuaryContacts, fd.AddtlActuaryContacts)
}

func contractDocumentRows(rev *types.ContractRevisionTable, docs []domain.Document) []types.ContractDocumentTable {
	out := make([]types.ContractDocumentTable, 0, len(docs))
	for i, d := range docs {
		out = append(out, types.ContractDocumentTable{
			ContractRevisionID: rev.ID,
			Name:               d.Name,
			S3URL:              d.S3URL,
			SHA256:             d.SHA256,
			DateAdded:          d.DateAdded,
			Position:           i,
		})
	}
	return out
}

func contractSupportingDocumentRows(rev *types.ContractRevisionTable, docs []domain.Document) []types.ContractSupportingDocumentTable {
	out := make([]types.ContractSupportingDocumentTable, 0, len(docs))
	for i, d := range docs {
		out = append(out, types.ContractSupportingDocumentTable{
			ContractRevisionID: rev.ID,
			Name:               d.Name,
			S3URL:              d.S3URL,
			SHA256:             d.SHA256,
			DateAdded:          d.DateAdded,
			Position:           i,
		})
	}
	return out
}

func stateContactRows(rev *types.ContractRevisionTable, contacts []domain.StateContact) []types.StateContactTable {
	out := make([]types.StateContactTable, 0, len(contacts))
	for i, c := range contacts {
		out = append(out, types.StateContactTable{
			ContractRevisionID: rev.ID,
			Name:               c.Name,
			TitleRole:          c.TitleRole,
			Email:              c.Email,
			Position:           i,
		})
	}
	return out
}

func rateDocumentRows(rev *types.RateRevisionTable, docs []domain.Document) []types.RateDocumentTable {
	out := make([]types.RateDocumentTable, 0, len(docs))
	for i, d := range docs {
		out = append(out, types.RateDocumentTable{
			RateRevisionID: rev.ID,
			Name:           d.Name,
			S3URL:          d.S3URL,
			SHA256:         d.SHA256,
			DateAdded:      d.DateAdded,
			Position:       i,
		})
	}
	return out
}

func rateSupportingDocumentRows(rev *types.RateRevisionTable, docs []domain.Document) []types.RateSupportingDocumentTable {
	out := make([]types.RateSupportingDocumentTable, 0, len(docs))
	for i, d := range docs {
		out = append(out, types.RateSupportingDocumentTable{
			RateRevisionID: rev.ID,
			Name:           d.Name,
			S3URL:          d.S3URL,
			SHA256:         d.SHA256,
			DateAdded:      d.DateAdded,
			Position:       i,
		})
	}
	return out
}

func actuaryContactRows(rev *types.RateRevisionTable, certifying, addtl []domain.ActuaryContact) []types.ActuaryContactTable {
	out := make([]types.ActuaryContactTable, 0, len(certifying)+len(addtl))
	for i, c := range certifying {
		out = append(out, actuaryContactRow(rev, c, types.ActuaryContactTypeCertifying, i))
	}
	for i, c := range addtl {
		out = append(out, actuaryContactRow(rev, c, types.ActuaryContactTypeAdditional, i))
	}
	return out
}

func actuaryContactRow(rev *types.RateRevisionTable, c domain.ActuaryContact, contactType string, position int) types.ActuaryContactTable {
	row := types.ActuaryContactTable{
		RateRevisionID:     rev.ID,
		Name:               c.Name,
		TitleRole:          c.TitleRole,
		Email:              c.Email,
		ActuarialFirmOther: c.ActuarialFirmOther,
		ContactType:        contactType,
		Position:           position,
	}
	row.ActuarialFirm = stringPtr((*string)(c.ActuarialFirm))
	return row
}

func jsonStringList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

// stringPtr copies a typed string pointer so the row never aliases domain
// memory.
func stringPtr(v *string) *string {
	if v == nil {
		return nil
	}
	s := *v
	return &s
}
