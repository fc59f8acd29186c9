package store

import (
	"context"
	"fmt"
	"time"

	"github.com/cargotrack/cargotrack/pkg/freight"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// dueForUpdateFilter matches active records with at least one Expected
// event whose date has passed.
func dueForUpdateFilter(now time.Time) bson.M {
	return bson.M{
		"trackend": nil,
		"schedule": bson.M{"$elemMatch": bson.M{
			"status":    freight.EventStatusExpected,
			"eventdate": bson.M{"$lte": now},
		}},
	}
}

// FindDueForUpdate returns the active records whose schedule should be
// re-fetched from the carrier.
func (s *Store) FindDueForUpdate(ctx context.Context, now time.Time) ([]UpdateCandidate, error) {
	collection := s.instance.GetCollection(trackingCollection)

	projection := options.Find().SetProjection(bson.M{"containerno": 1, "ownerref": 1, "_id": 0})

	cursor, err := collection.Find(ctx, dueForUpdateFilter(now), projection)
	if err != nil {
		return nil, err
	}

	var records []struct {
		ContainerNo string
		OwnerRef    string
	}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	candidates := make([]UpdateCandidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, UpdateCandidate{
			ContainerNo: record.ContainerNo,
			OwnerRef:    record.OwnerRef,
		})
	}

	return candidates, nil
}

// fullyActualizedPipeline selects the container numbers of active
// records counting as fully delivered under the given close policy.
func fullyActualizedPipeline(policy freight.ClosePolicy) mongo.Pipeline {
	switch policy {
	case freight.ClosePolicyLastActual:
		return mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"trackend": nil}}},
			bson.D{{Key: "$addFields", Value: bson.M{
				"lastevent": bson.M{"$last": "$schedule"},
			}}},
			bson.D{{Key: "$match", Value: bson.M{"lastevent.status": freight.EventStatusActual}}},
			bson.D{{Key: "$project", Value: bson.M{"containerno": 1, "_id": 0}}},
		}
	default:
		return mongo.Pipeline{
			bson.D{{Key: "$match", Value: bson.M{"trackend": nil}}},
			bson.D{{Key: "$addFields", Value: bson.M{
				"actualonly": bson.M{"$filter": bson.M{
					"input": "$schedule",
					"as":    "item",
					"cond":  bson.M{"$eq": bson.A{"$$item.status", freight.EventStatusActual}},
				}},
			}}},
			bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{
				"$eq": bson.A{bson.M{"$size": "$actualonly"}, bson.M{"$size": "$schedule"}},
			}}}},
			bson.D{{Key: "$project", Value: bson.M{"containerno": 1, "_id": 0}}},
		}
	}
}

// FindFullyActualized returns the container numbers of active records
// that reached their destination under the given close policy.
func (s *Store) FindFullyActualized(ctx context.Context, policy freight.ClosePolicy) ([]string, error) {
	collection := s.instance.GetCollection(trackingCollection)

	cursor, err := collection.Aggregate(ctx, fullyActualizedPipeline(policy))
	if err != nil {
		return nil, err
	}

	var records []struct {
		ContainerNo string
	}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}

	containerNos := make([]string, 0, len(records))
	for _, record := range records {
		containerNos = append(containerNos, record.ContainerNo)
	}

	return containerNos, nil
}

// vesselCandidatesPipeline unwinds the schedules of active records,
// keeps actualized legs with an assigned vessel and, per container,
// keeps only the leg with the highest sequence number.
func vesselCandidatesPipeline(now time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"trackend": nil}}},
		bson.D{{Key: "$unwind", Value: "$schedule"}},
		bson.D{{Key: "$match", Value: bson.M{
			"schedule.status":    freight.EventStatusActual,
			"schedule.eventdate": bson.M{"$lte": now},
			"schedule.imo":       bson.M{"$ne": ""},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"schedule.no": 1}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":        "$containerno",
			"vesselname": bson.M{"$last": "$schedule.vesselname"},
			"imo":        bson.M{"$last": "$schedule.imo"},
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"containerno": "$_id",
			"vesselname":  1,
			"imo":         1,
			"_id":         0,
		}}},
	}
}

// FindVesselCandidates returns, per active record, the latest
// actualized leg with an assigned vessel.
func (s *Store) FindVesselCandidates(ctx context.Context, now time.Time) ([]VesselCandidate, error) {
	collection := s.instance.GetCollection(trackingCollection)

	cursor, err := collection.Aggregate(ctx, vesselCandidatesPipeline(now))
	if err != nil {
		return nil, err
	}

	var records []struct {
		ContainerNo string
		VesselName  string
		IMO         string
	}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decoding vessel candidates: %w", err)
	}

	candidates := make([]VesselCandidate, 0, len(records))
	for _, record := range records {
		candidates = append(candidates, VesselCandidate{
			ContainerNo: record.ContainerNo,
			VesselName:  record.VesselName,
			IMO:         record.IMO,
		})
	}

	return candidates, nil
}
