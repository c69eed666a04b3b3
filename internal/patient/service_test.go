package patient

import (
	"context"
	"errors"
	"testing"

	"github.com/meditrack/clinic-service/internal/pagination"
)

type mockRepository struct {
	createPatientFunc func(ctx context.Context, req CreatePatientRequest) (*Patient, error)
	getPatientFunc    func(ctx context.Context, id string) (*Patient, error)
	listPatientsFunc  func(ctx context.Context, params pagination.Params) ([]Patient, *pagination.Meta, error)
	updatePatientFunc func(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error)
}

func (m *mockRepository) CreatePatient(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
	if m.createPatientFunc != nil {
		return m.createPatientFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) GetPatient(ctx context.Context, id string) (*Patient, error) {
	if m.getPatientFunc != nil {
		return m.getPatientFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *mockRepository) ListPatients(ctx context.Context, params pagination.Params) ([]Patient, *pagination.Meta, error) {
	if m.listPatientsFunc != nil {
		return m.listPatientsFunc(ctx, params)
	}
	return nil, nil, errors.New("not implemented")
}

func (m *mockRepository) UpdatePatient(ctx context.Context, id string, req UpdatePatientRequest) (*Patient, error) {
	if m.updatePatientFunc != nil {
		return m.updatePatientFunc(ctx, id, req)
	}
	return nil, errors.New("not implemented")
}

type mockCascade struct {
	deleteFunc func(ctx context.Context, patientID string) error
}

func (m *mockCascade) DeletePatientCascade(ctx context.Context, patientID string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, patientID)
	}
	return errors.New("not implemented")
}

func TestCreatePatient_Success(t *testing.T) {
	mockRepo := &mockRepository{
		createPatientFunc: func(ctx context.Context, req CreatePatientRequest) (*Patient, error) {
			return &Patient{ID: "patient-123", FirstName: req.FirstName, LastName: req.LastName}, nil
		},
	}
	service := NewService(mockRepo, &mockCascade{})

	p, err := service.CreatePatient(context.Background(), CreatePatientRequest{
		FirstName: "Ada",
		LastName:  "Okafor",
	})

	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if p.ID != "patient-123" {
		t.Errorf("Expected patient-123, got %s", p.ID)
	}
}

func TestCreatePatient_ValidationErrors(t *testing.T) {
	service := NewService(&mockRepository{}, &mockCascade{})

	if _, err := service.CreatePatient(context.Background(), CreatePatientRequest{LastName: "Okafor"}); !errors.Is(err, ErrMissingFirstName) {
		t.Errorf("Expected ErrMissingFirstName, got %v", err)
	}
	if _, err := service.CreatePatient(context.Background(), CreatePatientRequest{FirstName: "Ada"}); !errors.Is(err, ErrMissingLastName) {
		t.Errorf("Expected ErrMissingLastName, got %v", err)
	}
}

func TestDeletePatient_DelegatesToCascade(t *testing.T) {
	var deletedID string
	cascade := &mockCascade{
		deleteFunc: func(ctx context.Context, patientID string) error {
			deletedID = patientID
			return nil
		},
	}
	service := NewService(&mockRepository{}, cascade)

	if err := service.DeletePatient(context.Background(), "patient-123"); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if deletedID != "patient-123" {
		t.Errorf("Expected cascade for patient-123, got %s", deletedID)
	}
}

func TestDeletePatient_CascadeFailure(t *testing.T) {
	cascade := &mockCascade{
		deleteFunc: func(ctx context.Context, patientID string) error {
			return ErrCascadeFailed
		},
	}
	service := NewService(&mockRepository{}, cascade)

	if err := service.DeletePatient(context.Background(), "patient-123"); !errors.Is(err, ErrCascadeFailed) {
		t.Errorf("Expected ErrCascadeFailed, got %v", err)
	}
}
