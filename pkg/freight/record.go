// Package freight defines the container tracking data model shared by the
// store, the ETL stages and the web API.
package freight

import "time"

// EventStatus is the carrier's single letter status code for a schedule
// event.
type EventStatus string

const (
	EventStatusExpected EventStatus = "E"
	EventStatusActual   EventStatus = "A"
)

// ScheduleEvent is one logged or expected milestone for a shipment leg.
// Sequence numbers are unique and strictly increasing within a record;
// the schedule is only ever replaced wholesale, never reordered.
type ScheduleEvent struct {
	No         int
	Event      string
	PlaceName  string
	YardName   string
	EventDate  time.Time
	Status     EventStatus
	VesselName string `bson:",omitempty"`
	IMO        string `bson:",omitempty"`
}

// TrackingRecord is one physical container movement. A record with a nil
// TrackEnd is active; TrackEnd is set exactly once and never cleared.
type TrackingRecord struct {
	ContainerNo   string
	ContainerType string
	OwnerRef      string
	BillNo        string

	TrackStart time.Time
	TrackEnd   *time.Time

	OutboundTerminal string
	InboundTerminal  string

	VesselName string    `bson:",omitempty"`
	Location   *Location `bson:",omitempty"`

	Schedule []ScheduleEvent
}
