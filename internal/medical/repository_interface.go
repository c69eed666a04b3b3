package medical

import "context"

// RepositoryInterface defines the contract for medical record persistence
type RepositoryInterface interface {
	CreateVisit(ctx context.Context, req CreateVisitRequest) (*MedicalVisit, error)
	GetVisit(ctx context.Context, id string) (*MedicalVisit, error)
	ListVisitsByPatient(ctx context.Context, patientID string) ([]MedicalVisit, error)

	CreateHistory(ctx context.Context, req CreateHistoryRequest) (*MedicalHistory, error)
	ListHistoriesByPatient(ctx context.Context, patientID string) ([]MedicalHistory, error)

	CreateDiagnosis(ctx context.Context, req CreateDiagnosisRequest) (*Diagnosis, error)
	ListDiagnosesByVisit(ctx context.Context, visitID string) ([]Diagnosis, error)

	CreatePrescription(ctx context.Context, req CreatePrescriptionRequest) (*Prescription, error)
	ListPrescriptionsByVisit(ctx context.Context, visitID string) ([]Prescription, error)

	CreatePregnancy(ctx context.Context, req CreatePregnancyRequest) (*PregnancyRecord, error)
	ListPregnanciesByPatient(ctx context.Context, patientID string) ([]PregnancyRecord, error)

	CreateFollowup(ctx context.Context, req CreateFollowupRequest) (*PregnancyFollowup, error)
	ListFollowupsByPregnancy(ctx context.Context, pregnancyID string) ([]PregnancyFollowup, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
