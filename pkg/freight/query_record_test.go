package freight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeRecord(events ...ScheduleEvent) *TrackingRecord {
	return &TrackingRecord{
		ContainerNo: "TCNU1234567",
		BillNo:      "ONEYABC123",
		TrackStart:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Schedule:    events,
	}
}

func TestDueForUpdate(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("expected event in the past", func(t *testing.T) {
		record := activeRecord(
			ScheduleEvent{No: 1, Status: EventStatusActual, EventDate: now.Add(-48 * time.Hour)},
			ScheduleEvent{No: 2, Status: EventStatusExpected, EventDate: now.Add(-time.Hour)},
		)

		assert.True(t, record.DueForUpdate(now))
	})

	t.Run("expected event only in the future", func(t *testing.T) {
		record := activeRecord(
			ScheduleEvent{No: 1, Status: EventStatusExpected, EventDate: now.Add(time.Hour)},
		)

		assert.False(t, record.DueForUpdate(now))
	})

	t.Run("expected event exactly at now", func(t *testing.T) {
		record := activeRecord(
			ScheduleEvent{No: 1, Status: EventStatusExpected, EventDate: now},
		)

		assert.True(t, record.DueForUpdate(now))
	})

	t.Run("all events actual", func(t *testing.T) {
		record := activeRecord(
			ScheduleEvent{No: 1, Status: EventStatusActual, EventDate: now.Add(-time.Hour)},
		)

		assert.False(t, record.DueForUpdate(now))
	})

	t.Run("closed record never due", func(t *testing.T) {
		record := activeRecord(
			ScheduleEvent{No: 1, Status: EventStatusExpected, EventDate: now.Add(-time.Hour)},
		)
		closed := now.Add(-time.Minute)
		record.TrackEnd = &closed

		assert.False(t, record.DueForUpdate(now))
	})
}

func TestFullyActualized(t *testing.T) {
	allActual := activeRecord(
		ScheduleEvent{No: 1, Status: EventStatusActual},
		ScheduleEvent{No: 2, Status: EventStatusActual},
	)
	lastActualOnly := activeRecord(
		ScheduleEvent{No: 1, Status: EventStatusExpected},
		ScheduleEvent{No: 2, Status: EventStatusActual},
	)
	lastExpected := activeRecord(
		ScheduleEvent{No: 1, Status: EventStatusActual},
		ScheduleEvent{No: 2, Status: EventStatusExpected},
	)

	t.Run("all actual policy", func(t *testing.T) {
		assert.True(t, allActual.FullyActualized(ClosePolicyAllActual))
		assert.False(t, lastActualOnly.FullyActualized(ClosePolicyAllActual))
		assert.False(t, lastExpected.FullyActualized(ClosePolicyAllActual))
	})

	t.Run("last actual policy", func(t *testing.T) {
		assert.True(t, allActual.FullyActualized(ClosePolicyLastActual))
		assert.True(t, lastActualOnly.FullyActualized(ClosePolicyLastActual))
		assert.False(t, lastExpected.FullyActualized(ClosePolicyLastActual))
	})

	t.Run("policies diverge on interleaved schedules", func(t *testing.T) {
		assert.NotEqual(t,
			lastActualOnly.FullyActualized(ClosePolicyAllActual),
			lastActualOnly.FullyActualized(ClosePolicyLastActual))
	})

	t.Run("empty schedule never delivered", func(t *testing.T) {
		record := activeRecord()

		assert.False(t, record.FullyActualized(ClosePolicyAllActual))
		assert.False(t, record.FullyActualized(ClosePolicyLastActual))
	})
}

func TestLatestActualVessel(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	record := activeRecord(
		ScheduleEvent{No: 1, Status: EventStatusActual, EventDate: now.Add(-72 * time.Hour), VesselName: "FIRST LEG", IMO: "1111111"},
		ScheduleEvent{No: 2, Status: EventStatusActual, EventDate: now.Add(-24 * time.Hour), VesselName: "SECOND LEG", IMO: "2222222"},
		ScheduleEvent{No: 3, Status: EventStatusActual, EventDate: now.Add(-time.Hour), VesselName: "", IMO: ""},
		ScheduleEvent{No: 4, Status: EventStatusExpected, EventDate: now.Add(24 * time.Hour), VesselName: "FUTURE LEG", IMO: "3333333"},
	)

	event, found := record.LatestActualVessel(now)
	require.True(t, found)
	assert.Equal(t, 2, event.No)
	assert.Equal(t, "SECOND LEG", event.VesselName)
	assert.Equal(t, "2222222", event.IMO)

	t.Run("no actualized vessel legs", func(t *testing.T) {
		record := activeRecord(
			ScheduleEvent{No: 1, Status: EventStatusExpected, EventDate: now.Add(-time.Hour), IMO: "1234567"},
		)

		_, found := record.LatestActualVessel(now)
		assert.False(t, found)
	})

	t.Run("actual leg not yet due", func(t *testing.T) {
		record := activeRecord(
			ScheduleEvent{No: 1, Status: EventStatusActual, EventDate: now.Add(time.Hour), IMO: "1234567"},
		)

		_, found := record.LatestActualVessel(now)
		assert.False(t, found)
	})
}

func TestParseClosePolicy(t *testing.T) {
	policy, err := ParseClosePolicy("all-actual")
	require.NoError(t, err)
	assert.Equal(t, ClosePolicyAllActual, policy)

	policy, err = ParseClosePolicy("last-actual")
	require.NoError(t, err)
	assert.Equal(t, ClosePolicyLastActual, policy)

	_, err = ParseClosePolicy("first-actual")
	assert.Error(t, err)
}
