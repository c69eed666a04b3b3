package appointment

import (
	"reflect"
	"testing"
	"time"

	"github.com/meditrack/clinic-service/internal/schedule"
)

// mondayDate is 2025-03-03, a Monday (weekday 1)
var mondayDate = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func weeklyRule(day int, start, end string, slotMinutes int) schedule.WorkingSchedule {
	return schedule.WorkingSchedule{
		ID:                  "rule-1",
		DoctorID:            "doctor-1",
		DayOfWeek:           day,
		StartTime:           start,
		EndTime:             end,
		SlotDurationMinutes: slotMinutes,
		IsActive:            true,
	}
}

func booked(id, timeOfDay string, durationMinutes int, status Status) Appointment {
	return Appointment{
		ID:              id,
		PatientID:       "patient-1",
		DoctorID:        "doctor-1",
		AppointmentDate: mondayDate,
		AppointmentTime: timeOfDay,
		DurationMinutes: durationMinutes,
		Status:          status,
	}
}

// TestComputeAvailableSlots_OverlappingAppointment verifies that a 45-minute
// appointment at 10:00 suppresses both the 10:00 and 10:30 slots of a
// 30-minute grid, while 11:00 survives.
func TestComputeAvailableSlots_OverlappingAppointment(t *testing.T) {
	rules := []schedule.WorkingSchedule{weeklyRule(1, "09:00", "13:00", 30)}
	existing := []Appointment{booked("appt-1", "10:00", 45, StatusBooked)}

	slots := ComputeAvailableSlots(mondayDate, rules, existing)

	expected := []string{"09:00", "09:30", "11:00", "11:30", "12:00", "12:30"}
	if !reflect.DeepEqual(slots, expected) {
		t.Errorf("Expected slots %v, got %v", expected, slots)
	}
}

func TestComputeAvailableSlots_EmptyCalendar(t *testing.T) {
	rules := []schedule.WorkingSchedule{weeklyRule(1, "09:00", "11:00", 30)}

	slots := ComputeAvailableSlots(mondayDate, rules, nil)

	expected := []string{"09:00", "09:30", "10:00", "10:30"}
	if !reflect.DeepEqual(slots, expected) {
		t.Errorf("Expected slots %v, got %v", expected, slots)
	}
}

func TestComputeAvailableSlots_NoRuleForWeekday(t *testing.T) {
	// Rule is for Tuesday, the date is a Monday.
	rules := []schedule.WorkingSchedule{weeklyRule(2, "09:00", "13:00", 30)}

	slots := ComputeAvailableSlots(mondayDate, rules, nil)

	if len(slots) != 0 {
		t.Errorf("Expected no slots, got %v", slots)
	}
}

func TestComputeAvailableSlots_EndBeforeStart(t *testing.T) {
	rules := []schedule.WorkingSchedule{weeklyRule(1, "13:00", "09:00", 30)}

	slots := ComputeAvailableSlots(mondayDate, rules, nil)

	if len(slots) != 0 {
		t.Errorf("Expected no slots for inverted rule, got %v", slots)
	}
}

func TestComputeAvailableSlots_InactiveRuleIgnored(t *testing.T) {
	rule := weeklyRule(1, "09:00", "11:00", 30)
	rule.IsActive = false

	slots := ComputeAvailableSlots(mondayDate, []schedule.WorkingSchedule{rule}, nil)

	if len(slots) != 0 {
		t.Errorf("Expected no slots from inactive rule, got %v", slots)
	}
}

// TestComputeAvailableSlots_CancelledFreesSlot verifies that cancelled and
// no-show appointments do not occupy the calendar.
func TestComputeAvailableSlots_CancelledFreesSlot(t *testing.T) {
	rules := []schedule.WorkingSchedule{weeklyRule(1, "09:00", "10:00", 30)}
	existing := []Appointment{
		booked("appt-1", "09:00", 30, StatusCancelled),
		booked("appt-2", "09:30", 30, StatusNoShow),
	}

	slots := ComputeAvailableSlots(mondayDate, rules, existing)

	expected := []string{"09:00", "09:30"}
	if !reflect.DeepEqual(slots, expected) {
		t.Errorf("Expected slots %v, got %v", expected, slots)
	}
}

// TestComputeAvailableSlots_OffGridAppointment verifies an appointment that
// does not sit on the slot grid still blocks every slot it touches.
func TestComputeAvailableSlots_OffGridAppointment(t *testing.T) {
	rules := []schedule.WorkingSchedule{weeklyRule(1, "09:00", "11:00", 30)}
	// 09:40–10:10 straddles the 09:30 and 10:00 slots.
	existing := []Appointment{booked("appt-1", "09:40", 30, StatusConfirmed)}

	slots := ComputeAvailableSlots(mondayDate, rules, existing)

	expected := []string{"09:00", "10:30"}
	if !reflect.DeepEqual(slots, expected) {
		t.Errorf("Expected slots %v, got %v", expected, slots)
	}
}

func TestComputeAvailableSlots_OverlappingRulesDeduplicated(t *testing.T) {
	rules := []schedule.WorkingSchedule{
		weeklyRule(1, "09:00", "10:00", 30),
		weeklyRule(1, "09:30", "10:30", 30),
	}

	slots := ComputeAvailableSlots(mondayDate, rules, nil)

	expected := []string{"09:00", "09:30", "10:00"}
	if !reflect.DeepEqual(slots, expected) {
		t.Errorf("Expected slots %v, got %v", expected, slots)
	}
}

func TestComputeAvailableSlots_OtherDateIgnored(t *testing.T) {
	rules := []schedule.WorkingSchedule{weeklyRule(1, "09:00", "10:00", 30)}
	other := booked("appt-1", "09:00", 30, StatusBooked)
	other.AppointmentDate = mondayDate.AddDate(0, 0, 7)

	slots := ComputeAvailableSlots(mondayDate, rules, []Appointment{other})

	expected := []string{"09:00", "09:30"}
	if !reflect.DeepEqual(slots, expected) {
		t.Errorf("Expected slots %v, got %v", expected, slots)
	}
}

func TestIsSlotFree_Conflict(t *testing.T) {
	existing := []Appointment{booked("appt-1", "10:00", 45, StatusBooked)}

	if IsSlotFree(mondayDate, "10:30", 30, existing, "") {
		t.Error("Expected 10:30 to conflict with 10:00+45min appointment")
	}
	if !IsSlotFree(mondayDate, "11:00", 30, existing, "") {
		t.Error("Expected 11:00 to be free")
	}
}

// TestIsSlotFree_ExcludeSelf verifies that an appointment being rescheduled
// does not block its own new time range.
func TestIsSlotFree_ExcludeSelf(t *testing.T) {
	existing := []Appointment{booked("appt-1", "10:00", 30, StatusBooked)}

	if IsSlotFree(mondayDate, "10:00", 30, existing, "") {
		t.Error("Expected 10:00 to be taken without exclusion")
	}
	if !IsSlotFree(mondayDate, "10:00", 30, existing, "appt-1") {
		t.Error("Expected 10:00 to be free when excluding appt-1")
	}
}

func TestIsSlotFree_OffGridRequest(t *testing.T) {
	existing := []Appointment{booked("appt-1", "10:00", 30, StatusBooked)}

	// 10:25 starts inside a 5-minute block still occupied by appt-1.
	if IsSlotFree(mondayDate, "10:25", 30, existing, "") {
		t.Error("Expected 10:25 to conflict")
	}
	if !IsSlotFree(mondayDate, "10:30", 30, existing, "") {
		t.Error("Expected 10:30 to be free")
	}
}

func TestIsSlotFree_InvalidInput(t *testing.T) {
	if IsSlotFree(mondayDate, "25:00", 30, nil, "") {
		t.Error("Expected invalid clock time to report not free")
	}
	if IsSlotFree(mondayDate, "10:00", 0, nil, "") {
		t.Error("Expected zero duration to report not free")
	}
}
