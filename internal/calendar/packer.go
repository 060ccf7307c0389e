package calendar

import (
	"sort"

	"medispa-app-server/internal/models"
)

// Pack partitions a day's appointments into overlap groups. Appointments are
// sorted by start time (stable, so ties keep their input order) and each one
// joins the first group whose most recently added member it overlaps; if it
// overlaps none of them it opens a new group.
//
// The overlap test only looks at the LAST member of each group, so an
// appointment can share a group with entries it never directly overlaps,
// chained through intermediate members. This under-groups some pathological
// patterns compared with full interval-graph colouring. The approximation is
// deliberate product behaviour and the card layout depends on it, so it must
// not be "fixed".
//
// O(n*g) where g is the number of groups, fine for calendar-scale inputs.
func Pack(appointments []models.Appointment) [][]models.Appointment {
	if len(appointments) == 0 {
		return nil
	}

	sorted := make([]models.Appointment, len(appointments))
	copy(sorted, appointments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	var groups [][]models.Appointment
	for _, appt := range sorted {
		placed := false
		for gi := range groups {
			last := groups[gi][len(groups[gi])-1]
			if appt.StartTime.Before(last.EndTime) {
				groups[gi] = append(groups[gi], appt)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []models.Appointment{appt})
		}
	}
	return groups
}
