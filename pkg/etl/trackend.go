package etl

import (
	"context"
	"time"

	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/rs/zerolog/log"
)

// TrackEndJob closes records whose schedule is fully actualized under
// the configured close policy. Re-running it is idempotent: closed
// records no longer match the query.
type TrackEndJob struct {
	Store  *store.Store
	Policy freight.ClosePolicy
}

func (j *TrackEndJob) Run(ctx context.Context, now time.Time) error {
	containerNos, err := j.Store.FindFullyActualized(ctx, j.Policy)
	if err != nil {
		log.Error().Err(err).Str("stage", "track-end").Str("operation", "records-to-close").
			Msg("Query failed")
		return err
	}

	closeTime := now.Truncate(time.Second)

	for _, containerNo := range containerNos {
		if err := j.Store.CloseTracking(ctx, containerNo, closeTime); err != nil {
			log.Error().Err(err).Str("stage", "track-end").Str("operation", "close").
				Str("containerno", containerNo).Msg("Record not closed")
			continue
		}

		log.Info().Str("stage", "track-end").Str("containerno", containerNo).Msg("Tracking closed")
	}

	return nil
}
