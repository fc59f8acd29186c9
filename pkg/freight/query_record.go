package freight

import (
	"fmt"
	"time"
)

// ClosePolicy selects the "fully delivered" predicate. The two variants
// are not equivalent for schedules with interleaved Expected/Actual
// entries, so the choice is surfaced as configuration rather than baked
// in.
type ClosePolicy string

const (
	// ClosePolicyAllActual closes a record once every schedule event is
	// Actual.
	ClosePolicyAllActual ClosePolicy = "all-actual"
	// ClosePolicyLastActual closes a record once the final schedule
	// event is Actual.
	ClosePolicyLastActual ClosePolicy = "last-actual"
)

func ParseClosePolicy(value string) (ClosePolicy, error) {
	switch ClosePolicy(value) {
	case ClosePolicyAllActual, ClosePolicyLastActual:
		return ClosePolicy(value), nil
	}

	return "", fmt.Errorf("unknown close policy %q", value)
}

func (r *TrackingRecord) Active() bool {
	return r.TrackEnd == nil
}

// DueForUpdate reports whether the record has at least one Expected
// event whose date has passed, meaning its schedule should be
// re-fetched from the carrier.
func (r *TrackingRecord) DueForUpdate(now time.Time) bool {
	if !r.Active() {
		return false
	}

	for _, event := range r.Schedule {
		if event.Status == EventStatusExpected && !event.EventDate.After(now) {
			return true
		}
	}

	return false
}

// FullyActualized reports whether the record counts as fully delivered
// under the given close policy.
func (r *TrackingRecord) FullyActualized(policy ClosePolicy) bool {
	if len(r.Schedule) == 0 {
		return false
	}

	if policy == ClosePolicyLastActual {
		return r.Schedule[len(r.Schedule)-1].Status == EventStatusActual
	}

	for _, event := range r.Schedule {
		if event.Status != EventStatusActual {
			return false
		}
	}

	return true
}

// LatestActualVessel returns the highest numbered actualized event that
// has an assigned vessel, i.e. the latest leg whose carrying vessel is
// known.
func (r *TrackingRecord) LatestActualVessel(now time.Time) (ScheduleEvent, bool) {
	var latest ScheduleEvent
	found := false

	for _, event := range r.Schedule {
		if event.Status != EventStatusActual || event.IMO == "" {
			continue
		}
		if event.EventDate.After(now) {
			continue
		}
		if !found || event.No > latest.No {
			latest = event
			found = true
		}
	}

	return latest, found
}
