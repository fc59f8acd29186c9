// Package store implements the tracking store over three MongoDB
// collections: tracking (active records), init (write once archival
// copy at creation) and ships (the vessel directory keyed by IMO).
package store

import (
	"context"
	"errors"
	"time"

	"github.com/cargotrack/cargotrack/pkg/database"
	"github.com/cargotrack/cargotrack/pkg/freight"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	trackingCollection = "tracking"
	archiveCollection  = "init"
	shipsCollection    = "ships"
)

// Store is the explicit handle every stage receives for the lifetime of
// one invocation.
type Store struct {
	instance *database.Instance
}

func New(instance *database.Instance) *Store {
	return &Store{instance: instance}
}

// UpdateCandidate identifies a record whose schedule is due for a
// re-fetch from the carrier.
type UpdateCandidate struct {
	ContainerNo string
	OwnerRef    string
}

// VesselCandidate is the latest actualized leg with an assigned vessel
// for one active record.
type VesselCandidate struct {
	ContainerNo string
	VesselName  string
	IMO         string
}

// ExistsActive reports whether any record for the bill number is still
// open, in either the tracking or the archival collection.
func (s *Store) ExistsActive(ctx context.Context, billNo string) (bool, error) {
	query := bson.M{"billno": billNo, "trackend": nil}

	for _, collectionName := range []string{archiveCollection, trackingCollection} {
		count, err := s.instance.GetCollection(collectionName).CountDocuments(ctx, query)
		if err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}

	return false, nil
}

// Insert loads a new record into the archival collection and then the
// tracking collection. The two writes are sequential and deliberately
// not transactional; a failure between them leaves the views
// inconsistent and is only logged by the caller.
func (s *Store) Insert(ctx context.Context, record *freight.TrackingRecord) error {
	var insertErrs []error

	for _, collectionName := range []string{archiveCollection, trackingCollection} {
		_, err := s.instance.GetCollection(collectionName).InsertOne(ctx, record)
		if err != nil {
			insertErrs = append(insertErrs, err)
		}
	}

	return errors.Join(insertErrs...)
}

// UpdateSchedule replaces the schedule of the matching active record
// wholesale.
func (s *Store) UpdateSchedule(ctx context.Context, containerNo string, schedule []freight.ScheduleEvent) error {
	collection := s.instance.GetCollection(trackingCollection)

	_, err := collection.UpdateOne(ctx,
		bson.M{"containerno": containerNo, "trackend": nil},
		bson.M{"$set": bson.M{"schedule": schedule}},
	)

	return err
}

// UpdatePosition sets the carrying vessel name and location on the
// matching active record.
func (s *Store) UpdatePosition(ctx context.Context, containerNo string, vesselName string, location *freight.Location) error {
	collection := s.instance.GetCollection(trackingCollection)

	_, err := collection.UpdateOne(ctx,
		bson.M{"containerno": containerNo, "trackend": nil},
		bson.M{"$set": bson.M{"vesselname": vesselName, "location": location}},
	)

	return err
}

// CloseTracking sets trackend on the matching active record. Closed
// records no longer match the filter, which makes re-runs idempotent.
func (s *Store) CloseTracking(ctx context.Context, containerNo string, timestamp time.Time) error {
	collection := s.instance.GetCollection(trackingCollection)

	_, err := collection.UpdateOne(ctx,
		bson.M{"containerno": containerNo, "trackend": nil},
		bson.M{"$set": bson.M{"trackend": timestamp}},
	)

	return err
}

// FindRecord returns the newest tracking record for a container, or nil
// when none exists.
func (s *Store) FindRecord(ctx context.Context, containerNo string) (*freight.TrackingRecord, error) {
	collection := s.instance.GetCollection(trackingCollection)

	var record freight.TrackingRecord
	err := collection.FindOne(ctx, bson.M{"containerno": containerNo}).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &record, nil
}

// FindVessel looks the directory up by IMO, returning nil when the
// vessel is unknown.
func (s *Store) FindVessel(ctx context.Context, imo string) (*freight.VesselRecord, error) {
	collection := s.instance.GetCollection(shipsCollection)

	var vessel freight.VesselRecord
	err := collection.FindOne(ctx, bson.M{"imo": imo}).Decode(&vessel)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &vessel, nil
}

func (s *Store) InsertVessel(ctx context.Context, vessel *freight.VesselRecord) error {
	_, err := s.instance.GetCollection(shipsCollection).InsertOne(ctx, vessel)

	return err
}

func (s *Store) CountActive(ctx context.Context) (int64, error) {
	return s.instance.GetCollection(trackingCollection).CountDocuments(ctx, bson.M{"trackend": nil})
}

func (s *Store) CountClosed(ctx context.Context) (int64, error) {
	return s.instance.GetCollection(trackingCollection).CountDocuments(ctx, bson.M{"trackend": bson.M{"$ne": nil}})
}

func (s *Store) CountVessels(ctx context.Context) (int64, error) {
	return s.instance.GetCollection(shipsCollection).CountDocuments(ctx, bson.D{})
}
