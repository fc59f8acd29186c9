// Package etl holds the batch jobs driving the tracking record
// lifecycle: onboarding, schedule refresh, position enrichment,
// closing, and the bulk vessel census. Each job processes its
// candidates strictly in sequence; one record's failure is logged and
// never affects the rest of the batch.
package etl

import (
	"context"
	"time"

	"github.com/cargotrack/cargotrack/pkg/carrier"
	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/rs/zerolog/log"
)

// InitJob onboards new shipments from a list of bill numbers.
type InitJob struct {
	Store   *store.Store
	Carrier *carrier.Fetcher
}

// Run processes each bill number independently: existence check,
// extract, transform, load. A duplicate or a failed fetch aborts that
// bill number only.
func (j *InitJob) Run(ctx context.Context, billNos []string) {
	for _, billNo := range billNos {
		j.runOne(ctx, billNo)
	}
}

func (j *InitJob) runOne(ctx context.Context, billNo string) {
	stageLog := log.With().Str("stage", "etl-init").Str("billno", billNo).Logger()

	exists, err := j.Store.ExistsActive(ctx, billNo)
	if err != nil {
		stageLog.Error().Err(err).Str("operation", "check-record").Msg("Existence check failed")
		return
	}
	if exists {
		stageLog.Info().Str("operation", "check-record").Msg("Active record already exists")
		return
	}

	details, err := j.Carrier.FetchContainer(billNo)
	if err != nil {
		stageLog.Error().Err(err).Str("operation", "extract-container").Msg("No container details")
		return
	}

	rawEvents, err := j.Carrier.FetchSchedule(details.ContainerNo, details.OwnerRef)
	if err != nil {
		stageLog.Error().Err(err).Str("operation", "extract-schedule").
			Str("containerno", details.ContainerNo).Msg("No schedule")
		return
	}

	schedule, err := buildSchedule(rawEvents)
	if err != nil {
		stageLog.Error().Err(err).Str("operation", "transform").Msg("Schedule transform failed")
		return
	}

	outbound, inbound := findTerminals(rawEvents)

	record := &freight.TrackingRecord{
		ContainerNo:      details.ContainerNo,
		ContainerType:    details.ContainerType,
		OwnerRef:         details.OwnerRef,
		BillNo:           details.BillNo,
		TrackStart:       time.Now().Truncate(time.Second),
		OutboundTerminal: outbound,
		InboundTerminal:  inbound,
		Schedule:         schedule,
	}

	// The archival and tracking inserts are not atomic; an
	// unacknowledged write is logged and never rolled back.
	if err := j.Store.Insert(ctx, record); err != nil {
		stageLog.Error().Err(err).Str("operation", "load").Msg("Record not fully loaded")
		return
	}

	stageLog.Info().Str("operation", "load").Str("containerno", details.ContainerNo).Msg("Tracking started")
}
