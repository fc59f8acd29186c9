package etl

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cargotrack/cargotrack/pkg/carrier"
	"github.com/cargotrack/cargotrack/pkg/freight"
)

// The carrier encodes event dates in a fixed text format with minute
// precision.
const eventDateFormat = "2006-01-02 15:04"

const outboundTerminalMarker = "Outbound Terminal"
const inboundTerminalMarker = "Inbound Terminal"

// buildSchedule maps raw carrier events onto schedule events. Any entry
// failing to parse fails the whole schedule; no partial records are
// admitted.
func buildSchedule(rawEvents []carrier.RawEvent) ([]freight.ScheduleEvent, error) {
	schedule := make([]freight.ScheduleEvent, 0, len(rawEvents))

	for _, raw := range rawEvents {
		no, err := strconv.Atoi(raw.No)
		if err != nil {
			return nil, fmt.Errorf("event sequence number %q: %w", raw.No, err)
		}

		eventDate, err := time.Parse(eventDateFormat, raw.EventDate)
		if err != nil {
			return nil, fmt.Errorf("event date %q: %w", raw.EventDate, err)
		}

		schedule = append(schedule, freight.ScheduleEvent{
			No:         no,
			Event:      raw.Event,
			PlaceName:  raw.PlaceName,
			YardName:   raw.YardName,
			EventDate:  eventDate,
			Status:     freight.EventStatus(raw.StatusCode),
			VesselName: raw.VesselName,
			IMO:        raw.IMO,
		})
	}

	return schedule, nil
}

// findTerminals scans the raw schedule text for the terminal
// designation markers and returns the outbound and inbound terminals as
// "placeName|yardName", empty when no event matches.
func findTerminals(rawEvents []carrier.RawEvent) (outbound string, inbound string) {
	for _, raw := range rawEvents {
		if strings.Contains(raw.Event, outboundTerminalMarker) {
			outbound = raw.PlaceName + "|" + raw.YardName
		}
		if strings.Contains(raw.Event, inboundTerminalMarker) {
			inbound = raw.PlaceName + "|" + raw.YardName
		}
	}

	return outbound, inbound
}
