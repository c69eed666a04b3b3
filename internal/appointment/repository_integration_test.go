package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/meditrack/clinic-service/internal/messaging"
	"github.com/meditrack/clinic-service/internal/testutil"
)

func TestBook_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	repo := NewRepository(db, publisher)

	doctorID := testutil.CreateTestDoctor(t, db, "Dr. Imani")
	patientID := testutil.CreateTestPatient(t, db, "Ada", "Okafor")

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	a, err := repo.Book(context.Background(), BookRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Expected booking to succeed, got: %v", err)
	}
	if a.Status != StatusBooked {
		t.Errorf("Expected BOOKED, got %s", a.Status)
	}

	publisher.AssertEventPublished(t, messaging.EventAppointmentBooked)
}

func TestBook_Integration_SlotConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	repo := NewRepository(db, publisher)

	doctorID := testutil.CreateTestDoctor(t, db, "Dr. Imani")
	patientID := testutil.CreateTestPatient(t, db, "Ada", "Okafor")

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	req := BookRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
		DurationMinutes: 45,
	}

	if _, err := repo.Book(context.Background(), req); err != nil {
		t.Fatalf("First booking failed: %v", err)
	}

	// Overlapping request: 10:30 falls inside 10:00+45min.
	req.AppointmentTime = "10:30"
	req.DurationMinutes = 30
	_, err := repo.Book(context.Background(), req)
	if !errors.Is(err, ErrSlotConflict) {
		t.Errorf("Expected ErrSlotConflict, got %v", err)
	}
}

// TestBook_Integration_ConcurrentSameSlot fires two bookings for the same
// slot at once; exactly one may win.
func TestBook_Integration_ConcurrentSameSlot(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	repo := NewRepository(db, publisher)

	doctorID := testutil.CreateTestDoctor(t, db, "Dr. Imani")
	patientID := testutil.CreateTestPatient(t, db, "Ada", "Okafor")

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	req := BookRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "11:00",
		DurationMinutes: 30,
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Book(context.Background(), req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	if succeeded != 1 {
		t.Errorf("Expected exactly one booking to succeed, got %d", succeeded)
	}
}

func TestReschedule_Integration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	repo := NewRepository(db, publisher)

	doctorID := testutil.CreateTestDoctor(t, db, "Dr. Imani")
	patientID := testutil.CreateTestPatient(t, db, "Ada", "Okafor")

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	a, err := repo.Book(context.Background(), BookRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "10:00",
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Booking failed: %v", err)
	}

	// Moving within its own original window must not self-conflict.
	moved, err := repo.Reschedule(context.Background(), a.ID, RescheduleRequest{
		AppointmentDate: date,
		AppointmentTime: "10:15",
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Reschedule failed: %v", err)
	}
	if moved.AppointmentTime != "10:15" {
		t.Errorf("Expected 10:15, got %s", moved.AppointmentTime)
	}

	publisher.AssertEventPublished(t, messaging.EventAppointmentRescheduled)
}

func TestUpdateStatus_Integration_TerminalRejectsChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CleanupTestDB(t, db)

	publisher := testutil.NewMockPublisher()
	repo := NewRepository(db, publisher)

	doctorID := testutil.CreateTestDoctor(t, db, "Dr. Imani")
	patientID := testutil.CreateTestPatient(t, db, "Ada", "Okafor")

	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	a, err := repo.Book(context.Background(), BookRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "09:00",
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("Booking failed: %v", err)
	}

	if _, err := repo.UpdateStatus(context.Background(), a.ID, StatusCancelled); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	_, err = repo.UpdateStatus(context.Background(), a.ID, StatusConfirmed)
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition after cancellation, got %v", err)
	}

	// The freed slot is bookable again.
	if _, err := repo.Book(context.Background(), BookRequest{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: date,
		AppointmentTime: "09:00",
		DurationMinutes: 30,
	}); err != nil {
		t.Errorf("Expected freed slot to be bookable, got: %v", err)
	}
}
