package etl

import (
	"context"
	"time"

	"github.com/cargotrack/cargotrack/pkg/carrier"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/rs/zerolog/log"
)

// UpdateJob refreshes the schedule of in-flight shipments whose next
// expected event is due. The carrier always returns the full schedule,
// which replaces the stored one wholesale.
type UpdateJob struct {
	Store   *store.Store
	Carrier *carrier.Fetcher
}

func (j *UpdateJob) Run(ctx context.Context, now time.Time) error {
	candidates, err := j.Store.FindDueForUpdate(ctx, now)
	if err != nil {
		log.Error().Err(err).Str("stage", "etl-update").Str("operation", "records-to-update").
			Msg("Query failed")
		return err
	}

	for _, candidate := range candidates {
		j.updateOne(ctx, candidate)
	}

	log.Info().Str("stage", "etl-update").Int("candidates", len(candidates)).Msg("Update run complete")

	return nil
}

func (j *UpdateJob) updateOne(ctx context.Context, candidate store.UpdateCandidate) {
	stageLog := log.With().Str("stage", "etl-update").Str("containerno", candidate.ContainerNo).Logger()

	rawEvents, err := j.Carrier.FetchSchedule(candidate.ContainerNo, candidate.OwnerRef)
	if err != nil {
		stageLog.Error().Err(err).Str("operation", "extract-schedule").Msg("No schedule")
		return
	}

	schedule, err := buildSchedule(rawEvents)
	if err != nil {
		stageLog.Error().Err(err).Str("operation", "transform").Msg("Schedule transform failed")
		return
	}

	if err := j.Store.UpdateSchedule(ctx, candidate.ContainerNo, schedule); err != nil {
		stageLog.Error().Err(err).Str("operation", "update").Msg("Schedule not updated")
	}
}
