package medical

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockRepository struct {
	createVisitFunc    func(ctx context.Context, req CreateVisitRequest) (*MedicalVisit, error)
	createFollowupFunc func(ctx context.Context, req CreateFollowupRequest) (*PregnancyFollowup, error)
	RepositoryInterface
}

func (m *mockRepository) CreateVisit(ctx context.Context, req CreateVisitRequest) (*MedicalVisit, error) {
	if m.createVisitFunc != nil {
		return m.createVisitFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) CreateFollowup(ctx context.Context, req CreateFollowupRequest) (*PregnancyFollowup, error) {
	if m.createFollowupFunc != nil {
		return m.createFollowupFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func TestCreateVisit_ValidationErrors(t *testing.T) {
	service := NewService(&mockRepository{})

	_, err := service.CreateVisit(context.Background(), CreateVisitRequest{DoctorID: "doctor-1"})
	if !errors.Is(err, ErrMissingPatientID) {
		t.Errorf("Expected ErrMissingPatientID, got %v", err)
	}

	_, err = service.CreateVisit(context.Background(), CreateVisitRequest{PatientID: "patient-1"})
	if !errors.Is(err, ErrMissingDoctorID) {
		t.Errorf("Expected ErrMissingDoctorID, got %v", err)
	}
}

func TestCreateVisit_DuplicateAppointment(t *testing.T) {
	mockRepo := &mockRepository{
		createVisitFunc: func(ctx context.Context, req CreateVisitRequest) (*MedicalVisit, error) {
			return nil, ErrVisitExists
		},
	}
	service := NewService(mockRepo)

	apptID := "appt-1"
	_, err := service.CreateVisit(context.Background(), CreateVisitRequest{
		PatientID:     "patient-1",
		DoctorID:      "doctor-1",
		AppointmentID: &apptID,
		VisitDate:     time.Now(),
	})
	if !errors.Is(err, ErrVisitExists) {
		t.Errorf("Expected ErrVisitExists, got %v", err)
	}
}

// TestCreateFollowup_RequiresReference verifies a followup must reach a
// visit or a pregnancy record.
func TestCreateFollowup_RequiresReference(t *testing.T) {
	service := NewService(&mockRepository{})

	_, err := service.CreateFollowup(context.Background(), CreateFollowupRequest{GestationalWeek: 12})
	if !errors.Is(err, ErrMissingReference) {
		t.Errorf("Expected ErrMissingReference, got %v", err)
	}
}

func TestCreateFollowup_VisitOnly(t *testing.T) {
	mockRepo := &mockRepository{
		createFollowupFunc: func(ctx context.Context, req CreateFollowupRequest) (*PregnancyFollowup, error) {
			return &PregnancyFollowup{ID: "fu-1", VisitID: req.VisitID, GestationalWeek: req.GestationalWeek}, nil
		},
	}
	service := NewService(mockRepo)

	visitID := "visit-1"
	f, err := service.CreateFollowup(context.Background(), CreateFollowupRequest{VisitID: &visitID, GestationalWeek: 12})
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if f.VisitID == nil || *f.VisitID != "visit-1" {
		t.Error("Expected followup linked to visit-1")
	}
}
