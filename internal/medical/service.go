package medical

import (
	"context"
	"fmt"
)

type Service struct {
	repo RepositoryInterface
}

func NewService(repo RepositoryInterface) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateVisit(ctx context.Context, req CreateVisitRequest) (*MedicalVisit, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.DoctorID == "" {
		return nil, ErrMissingDoctorID
	}

	created, err := s.repo.CreateVisit(ctx, req)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *Service) GetVisit(ctx context.Context, id string) (*MedicalVisit, error) {
	return s.repo.GetVisit(ctx, id)
}

func (s *Service) ListVisitsByPatient(ctx context.Context, patientID string) ([]MedicalVisit, error) {
	if patientID == "" {
		return nil, ErrMissingPatientID
	}
	return s.repo.ListVisitsByPatient(ctx, patientID)
}

func (s *Service) CreateHistory(ctx context.Context, req CreateHistoryRequest) (*MedicalHistory, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	if req.Condition == "" {
		return nil, fmt.Errorf("condition is required")
	}
	return s.repo.CreateHistory(ctx, req)
}

func (s *Service) ListHistoriesByPatient(ctx context.Context, patientID string) ([]MedicalHistory, error) {
	if patientID == "" {
		return nil, ErrMissingPatientID
	}
	return s.repo.ListHistoriesByPatient(ctx, patientID)
}

func (s *Service) CreateDiagnosis(ctx context.Context, req CreateDiagnosisRequest) (*Diagnosis, error) {
	if req.VisitID == "" {
		return nil, ErrMissingVisitID
	}
	if req.Name == "" {
		return nil, fmt.Errorf("diagnosis name is required")
	}
	return s.repo.CreateDiagnosis(ctx, req)
}

func (s *Service) ListDiagnosesByVisit(ctx context.Context, visitID string) ([]Diagnosis, error) {
	if visitID == "" {
		return nil, ErrMissingVisitID
	}
	return s.repo.ListDiagnosesByVisit(ctx, visitID)
}

func (s *Service) CreatePrescription(ctx context.Context, req CreatePrescriptionRequest) (*Prescription, error) {
	if req.VisitID == "" {
		return nil, ErrMissingVisitID
	}
	if req.Medication == "" {
		return nil, fmt.Errorf("medication is required")
	}
	return s.repo.CreatePrescription(ctx, req)
}

func (s *Service) ListPrescriptionsByVisit(ctx context.Context, visitID string) ([]Prescription, error) {
	if visitID == "" {
		return nil, ErrMissingVisitID
	}
	return s.repo.ListPrescriptionsByVisit(ctx, visitID)
}

func (s *Service) CreatePregnancy(ctx context.Context, req CreatePregnancyRequest) (*PregnancyRecord, error) {
	if req.PatientID == "" {
		return nil, ErrMissingPatientID
	}
	return s.repo.CreatePregnancy(ctx, req)
}

func (s *Service) ListPregnanciesByPatient(ctx context.Context, patientID string) ([]PregnancyRecord, error) {
	if patientID == "" {
		return nil, ErrMissingPatientID
	}
	return s.repo.ListPregnanciesByPatient(ctx, patientID)
}

// CreateFollowup records a pregnancy checkup. A followup must hang off a
// visit, a pregnancy record, or both.
func (s *Service) CreateFollowup(ctx context.Context, req CreateFollowupRequest) (*PregnancyFollowup, error) {
	if req.VisitID == nil && req.PregnancyID == nil {
		return nil, ErrMissingReference
	}
	return s.repo.CreateFollowup(ctx, req)
}

func (s *Service) ListFollowupsByPregnancy(ctx context.Context, pregnancyID string) ([]PregnancyFollowup, error) {
	if pregnancyID == "" {
		return nil, ErrMissingReference
	}
	return s.repo.ListFollowupsByPregnancy(ctx, pregnancyID)
}
