package domain

import "time"

type PopulationCovered string

const (
	PopulationMedicaid        PopulationCovered = "MEDICAID"
	PopulationCHIP            PopulationCovered = "CHIP"
	PopulationMedicaidAndCHIP PopulationCovered = "MEDICAID_AND_CHIP"
)

type SubmissionType string

const (
	SubmissionContractOnly     SubmissionType = "CONTRACT_ONLY"
	SubmissionContractAndRates SubmissionType = "CONTRACT_AND_RATES"
)

type ContractCategory string

const (
	ContractBase      ContractCategory = "BASE"
	ContractAmendment ContractCategory = "AMENDMENT"
)

type ContractExecutionStatus string

const (
	ContractExecuted   ContractExecutionStatus = "EXECUTED"
	ContractUnexecuted ContractExecutionStatus = "UNEXECUTED"
)

type ManagedCareEntity string

const (
	EntityMCO  ManagedCareEntity = "MCO"
	EntityPIHP ManagedCareEntity = "PIHP"
	EntityPAHP ManagedCareEntity = "PAHP"
	EntityPCCM ManagedCareEntity = "PCCM"
)

type FederalAuthority string

const (
	AuthorityStatePlan  FederalAuthority = "STATE_PLAN"
	AuthorityWaiver1915 FederalAuthority = "WAIVER_1915B"
	AuthorityWaiver1115 FederalAuthority = "WAIVER_1115"
	AuthorityVoluntary  FederalAuthority = "VOLUNTARY"
	AuthorityBenchmark  FederalAuthority = "BENCHMARK"
	AuthorityTitleXXI   FederalAuthority = "TITLE_XXI"
)

// DSNPAuthorities are the federal authorities that make the D-SNP contract
// question applicable.
var DSNPAuthorities = []FederalAuthority{
	AuthorityStatePlan,
	AuthorityWaiver1915,
	AuthorityWaiver1115,
}

type RateCertType string

const (
	RateNew       RateCertType = "NEW"
	RateAmendment RateCertType = "AMENDMENT"
)

type RateCapitationType string

const (
	CapitationRateCell  RateCapitationType = "RATE_CELL"
	CapitationRateRange RateCapitationType = "RATE_RANGE"
)

type ActuaryCommunication string

const (
	ActuaryCommOACTToActuary ActuaryCommunication = "OACT_TO_ACTUARY"
	ActuaryCommOACTToState   ActuaryCommunication = "OACT_TO_STATE"
)

type ActuarialFirm string

const (
	FirmMercer       ActuarialFirm = "MERCER"
	FirmMilliman     ActuarialFirm = "MILLIMAN"
	FirmOptumas      ActuarialFirm = "OPTUMAS"
	FirmGuidehouse   ActuarialFirm = "GUIDEHOUSE"
	FirmDeloitte     ActuarialFirm = "DELOITTE"
	FirmStateInHouse ActuarialFirm = "STATE_IN_HOUSE"
	FirmOther        ActuarialFirm = "OTHER"
)

type MedicaidPopulation string

const (
	PopulationMedicareMedicaidWithDSNP    MedicaidPopulation = "MEDICARE_MEDICAID_WITH_DSNP"
	PopulationMedicaidOnly                MedicaidPopulation = "MEDICAID_ONLY"
	PopulationMedicareMedicaidWithoutDSNP MedicaidPopulation = "MEDICARE_MEDICAID_WITHOUT_DSNP"
)

// DocumentCategory is fixed by the table a document row came from, never
// user-supplied.
type DocumentCategory string

const (
	DocCategoryContract        DocumentCategory = "CONTRACT"
	DocCategoryContractRelated DocumentCategory = "CONTRACT_RELATED"
	DocCategoryRates           DocumentCategory = "RATES"
	DocCategoryRatesRelated    DocumentCategory = "RATES_RELATED"
)

type Document struct {
	Name             string
	S3URL            string
	SHA256           string
	DateAdded        *time.Time
	DocumentCategory DocumentCategory
}

type StateContact struct {
	Name      string
	TitleRole string
	Email     string
}

type ActuaryContact struct {
	Name               string
	TitleRole          string
	Email              string
	ActuarialFirm      *ActuarialFirm
	ActuarialFirmOther *string
}

// ContractFormData is the business payload of one contract revision. Optional
// fields are nil when never set or explicitly cleared; the two states are
// deliberately indistinguishable here.
type ContractFormData struct {
	ProgramIDs            []string
	PopulationCovered     *PopulationCovered
	SubmissionType        SubmissionType
	RiskBasedContract     *bool
	SubmissionDescription string

	StateContacts       []StateContact
	SupportingDocuments []Document

	ContractType            ContractCategory
	ContractExecutionStatus *ContractExecutionStatus
	ContractDocuments       []Document
	ContractDateStart       *time.Time
	ContractDateEnd         *time.Time
	ManagedCareEntities     []ManagedCareEntity
	FederalAuthorities      []FederalAuthority

	InLieuServicesAndSettings     *bool
	ModifiedBenefitsProvided      *bool
	ModifiedGeoAreaServed         *bool
	ModifiedMedicaidBeneficiaries *bool
	ModifiedRiskSharingStrategy   *bool
	ModifiedIncentiveArrangements *bool
	ModifiedStateDirectedPayments *bool
	ModifiedPassThroughPayments   *bool
	ModifiedNetworkAdequacyStandards *bool
	ModifiedLengthOfContract      *bool

	StatutoryRegulatoryAttestation            *bool
	StatutoryRegulatoryAttestationDescription *string

	DSNPContract *bool
}

// RateFormData is the business payload of one rate certification revision.
type RateFormData struct {
	RateType           *RateCertType
	RateCapitationType *RateCapitationType

	RateDocuments       []Document
	SupportingDocuments []Document

	RateDateStart     *time.Time
	RateDateEnd       *time.Time
	RateDateCertified *time.Time

	AmendmentEffectiveDateStart *time.Time
	AmendmentEffectiveDateEnd   *time.Time

	RateProgramIDs       []string
	RateCertificationName *string
	MedicaidPopulations  []MedicaidPopulation

	CertifyingActuaryContacts      []ActuaryContact
	AddtlActuaryContacts           []ActuaryContact
	ActuaryCommunicationPreference *ActuaryCommunication
}
