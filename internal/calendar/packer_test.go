package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medispa-app-server/internal/models"
)

func appt(id string, startHour, startMin, endHour, endMin int) models.Appointment {
	a := models.Appointment{
		StartTime: at(startHour, startMin),
		EndTime:   at(endHour, endMin),
	}
	a.ID = id
	return a
}

func groupIDs(groups [][]models.Appointment) [][]string {
	out := make([][]string, len(groups))
	for i, g := range groups {
		for _, a := range g {
			out[i] = append(out[i], a.ID)
		}
	}
	return out
}

func TestPackEmpty(t *testing.T) {
	assert.Nil(t, Pack(nil))
	assert.Nil(t, Pack([]models.Appointment{}))
}

func TestPackDisjointAppointmentsGetOwnGroups(t *testing.T) {
	groups := Pack([]models.Appointment{
		appt("a", 9, 0, 10, 0),
		appt("b", 10, 0, 11, 0), // back-to-back is not an overlap
		appt("c", 14, 0, 15, 0),
	})
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, groupIDs(groups))
}

func TestPackOverlappingPairSharesGroup(t *testing.T) {
	groups := Pack([]models.Appointment{
		appt("alice", 9, 0, 9, 30),
		appt("bob", 9, 15, 9, 45),
	})
	require.Equal(t, [][]string{{"alice", "bob"}}, groupIDs(groups))
}

func TestPackChainsThroughLastMember(t *testing.T) {
	// C overlaps B but not A; the test against the group's LAST member
	// chains C into the same group anyway. Deliberate approximation.
	groups := Pack([]models.Appointment{
		appt("a", 9, 0, 10, 0),
		appt("b", 9, 30, 10, 30),
		appt("c", 10, 15, 11, 0),
	})
	assert.Equal(t, [][]string{{"a", "b", "c"}}, groupIDs(groups))
}

func TestPackSortsByStartTime(t *testing.T) {
	groups := Pack([]models.Appointment{
		appt("late", 15, 0, 16, 0),
		appt("early", 8, 0, 9, 0),
	})
	assert.Equal(t, [][]string{{"early"}, {"late"}}, groupIDs(groups))
}

func TestPackStableOnEqualStarts(t *testing.T) {
	groups := Pack([]models.Appointment{
		appt("first", 9, 0, 9, 30),
		appt("second", 9, 0, 10, 0),
	})
	require.Len(t, groups, 1)
	assert.Equal(t, [][]string{{"first", "second"}}, groupIDs(groups))
}

func TestPackIsDeterministic(t *testing.T) {
	input := []models.Appointment{
		appt("a", 9, 0, 10, 0),
		appt("b", 9, 30, 10, 30),
		appt("c", 10, 15, 11, 0),
		appt("d", 10, 45, 11, 30),
	}
	first := groupIDs(Pack(input))
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, groupIDs(Pack(input)))
	}
}

func TestPackDoesNotMutateInput(t *testing.T) {
	input := []models.Appointment{
		appt("late", 15, 0, 16, 0),
		appt("early", 8, 0, 9, 0),
	}
	Pack(input)
	assert.Equal(t, "late", input[0].ID)
	assert.Equal(t, "early", input[1].ID)
}
