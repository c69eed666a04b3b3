package appointment

import (
	"sort"
	"time"

	"github.com/meditrack/clinic-service/internal/schedule"
)

// blockGranularityMinutes is the resolution of the blocked-minute set.
// Five minutes always straddles slot boundaries correctly no matter how an
// appointment's duration compares to the schedule's slot size.
const blockGranularityMinutes = 5

// ComputeAvailableSlots resolves the bookable slot starts ("HH:MM", sorted
// ascending) for one doctor on one calendar date. Slots are generated from
// the active weekly rules matching the date's weekday; a slot survives only
// if none of its minutes intersect an occupying appointment. An empty result
// with no matching rule is deliberate: the caller may fall back to free-form
// time entry via IsSlotFree.
func ComputeAvailableSlots(date time.Time, schedules []schedule.WorkingSchedule, existing []Appointment) []string {
	day := int(date.Weekday())
	blocked := blockedMinutes(date, existing, "")

	emitted := make(map[int]bool)
	var starts []int

	for _, ws := range schedules {
		if !ws.IsActive || ws.DayOfWeek != day {
			continue
		}
		start, err := schedule.ParseClock(ws.StartTime)
		if err != nil {
			continue
		}
		end, err := schedule.ParseClock(ws.EndTime)
		if err != nil {
			continue
		}
		if ws.SlotDurationMinutes <= 0 {
			continue
		}

		// A rule with end <= start yields no candidates at all.
		for t := start; t < end; t += ws.SlotDurationMinutes {
			if emitted[t] {
				continue
			}
			if rangeFree(blocked, t, ws.SlotDurationMinutes) {
				emitted[t] = true
				starts = append(starts, t)
			}
		}
	}

	sort.Ints(starts)

	slots := make([]string, 0, len(starts))
	for _, t := range starts {
		slots = append(slots, schedule.FormatClock(t))
	}
	return slots
}

// IsSlotFree reports whether an arbitrary start/duration pair on the given
// date collides with any occupying appointment. excludeID skips one
// appointment, which is needed when re-validating an edit-in-place. The
// start need not sit on any schedule's grid.
func IsSlotFree(date time.Time, startTime string, durationMinutes int, existing []Appointment, excludeID string) bool {
	start, err := schedule.ParseClock(startTime)
	if err != nil {
		return false
	}
	if durationMinutes <= 0 {
		return false
	}

	blocked := blockedMinutes(date, existing, excludeID)
	return rangeFree(blocked, start, durationMinutes)
}

// blockedMinutes marks every occupied minute of the date at
// blockGranularityMinutes resolution. Appointments on other dates, the
// excluded appointment, and non-occupying statuses are ignored. Off-grid
// appointments block just like grid-aligned ones.
func blockedMinutes(date time.Time, existing []Appointment, excludeID string) map[int]struct{} {
	day := date.Format(DateLayout)
	blocked := make(map[int]struct{})

	for _, a := range existing {
		if a.AppointmentDate.Format(DateLayout) != day {
			continue
		}
		if excludeID != "" && a.ID == excludeID {
			continue
		}
		if !a.Status.Occupies() {
			continue
		}
		start, err := schedule.ParseClock(a.AppointmentTime)
		if err != nil {
			continue
		}
		if a.DurationMinutes <= 0 {
			continue
		}

		end := start + a.DurationMinutes
		for m := start - start%blockGranularityMinutes; m < end; m += blockGranularityMinutes {
			blocked[m] = struct{}{}
		}
	}

	return blocked
}

// rangeFree reports whether [start, start+duration) misses the blocked set.
func rangeFree(blocked map[int]struct{}, start, durationMinutes int) bool {
	end := start + durationMinutes
	for m := start - start%blockGranularityMinutes; m < end; m += blockGranularityMinutes {
		if _, taken := blocked[m]; taken {
			return false
		}
	}
	return true
}
