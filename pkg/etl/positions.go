package etl

import (
	"context"
	"time"

	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/cargotrack/cargotrack/pkg/vessels"
	"github.com/rs/zerolog/log"
)

// PositionJob resolves the carrying vessel's identity and current
// coordinates for shipments with a recently actualized leg. The vessel
// directory is a write-through cache: an MMSI learned from the web is
// stored so the next run skips the scrape.
type PositionJob struct {
	Store     *store.Store
	Directory *vessels.DirectoryFetcher
	Position  *vessels.PositionFetcher
}

func (j *PositionJob) Run(ctx context.Context, now time.Time) error {
	candidates, err := j.Store.FindVesselCandidates(ctx, now)
	if err != nil {
		log.Error().Err(err).Str("stage", "ship-location").Str("operation", "ships-to-update").
			Msg("Query failed")
		return err
	}

	for _, candidate := range candidates {
		j.enrichOne(ctx, candidate, now)
	}

	return nil
}

func (j *PositionJob) enrichOne(ctx context.Context, candidate store.VesselCandidate, now time.Time) {
	stageLog := log.With().Str("stage", "ship-location").
		Str("containerno", candidate.ContainerNo).Str("imo", candidate.IMO).Logger()

	mmsi, err := j.resolveMMSI(ctx, candidate, now)
	if err != nil {
		stageLog.Error().Err(err).Str("operation", "get-mmsi").Msg("MMSI not resolved")
		return
	}

	location, err := j.Position.Position(candidate.VesselName, candidate.IMO, mmsi)
	if err != nil {
		// Partial coordinate data is never written.
		stageLog.Error().Err(err).Str("operation", "get-location").Msg("Position not resolved")
		return
	}

	if err := j.Store.UpdatePosition(ctx, candidate.ContainerNo, candidate.VesselName, location); err != nil {
		stageLog.Error().Err(err).Str("operation", "update").Msg("Location not updated")
		return
	}

	stageLog.Info().Str("operation", "update").
		Float64("lon", location.Longitude()).Float64("lat", location.Latitude()).
		Msg("Location updated")
}

// resolveMMSI prefers the directory and falls back to the web lookup,
// caching a hit as a new directory entry.
func (j *PositionJob) resolveMMSI(ctx context.Context, candidate store.VesselCandidate, now time.Time) (string, error) {
	vessel, err := j.Store.FindVessel(ctx, candidate.IMO)
	if err != nil {
		return "", err
	}
	if vessel != nil {
		return vessel.MMSI, nil
	}

	mmsi, err := j.Directory.MMSIByIMO(candidate.IMO)
	if err != nil {
		return "", err
	}

	entry := &freight.VesselRecord{
		IMO:        candidate.IMO,
		MMSI:       mmsi,
		Name:       candidate.VesselName,
		LastUpdate: now.Truncate(time.Second),
	}
	if err := j.Store.InsertVessel(ctx, entry); err != nil {
		log.Error().Err(err).Str("stage", "ship-location").Str("operation", "insert-ship").
			Str("imo", candidate.IMO).Msg("Directory entry not inserted")
	}

	return mmsi, nil
}
