package etl

import (
	"context"
	"time"

	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/cargotrack/cargotrack/pkg/vessels"
	"github.com/rs/zerolog/log"
)

// CensusJob walks a bounded registry ship id space and loads every
// successfully parsed vessel into the directory. Unlike the on-demand
// enrichment path it performs no existence check, so repeated runs can
// produce duplicate directory entries.
type CensusJob struct {
	Store     *store.Store
	Directory *vessels.DirectoryFetcher

	StartID   int
	EndID     int
	BatchSize int
}

func (j *CensusJob) Run(ctx context.Context) {
	batchSize := j.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for batchStart := j.StartID; batchStart <= j.EndID; batchStart += batchSize {
		batchEnd := batchStart + batchSize - 1
		if batchEnd > j.EndID {
			batchEnd = j.EndID
		}

		inserted := 0
		for shipID := batchStart; shipID <= batchEnd; shipID++ {
			if j.censusOne(ctx, shipID) {
				inserted++
			}
		}

		log.Info().Str("stage", "ship-census").
			Int("from", batchStart).Int("to", batchEnd).Int("inserted", inserted).
			Msg("Census batch complete")
	}
}

func (j *CensusJob) censusOne(ctx context.Context, shipID int) bool {
	stageLog := log.With().Str("stage", "ship-census").Int("shipid", shipID).Logger()

	details, err := j.Directory.DetailsByShipID(shipID)
	if details == nil {
		stageLog.Error().Err(err).Str("operation", "scrape-details").Msg("No vessel details")
		return false
	}
	if err != nil {
		stageLog.Warn().Err(err).Str("operation", "scrape-details").Msg("Fields failed validation")
	}

	vessel := &freight.VesselRecord{
		IMO:        details.IMO,
		MMSI:       details.MMSI,
		Name:       details.Name,
		Type:       details.Type,
		Flag:       details.Flag,
		CallSign:   details.CallSign,
		ShipID:     shipID,
		LastUpdate: time.Now().Truncate(time.Second),
	}

	if err := j.Store.InsertVessel(ctx, vessel); err != nil {
		stageLog.Error().Err(err).Str("operation", "insert-ship").Msg("Vessel not inserted")
		return false
	}

	return true
}
