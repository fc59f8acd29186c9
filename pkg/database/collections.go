package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (i *Instance) createIndexes(ctx context.Context) {
	i.createTrackingIndexes(ctx)
	i.createVesselIndexes(ctx)
}

func (i *Instance) createTrackingIndexes(ctx context.Context) {
	for _, collectionName := range []string{"tracking", "init"} {
		collection := i.GetCollection(collectionName)
		indexes := []mongo.IndexModel{
			{
				Keys: bson.D{{Key: "containerno", Value: 1}},
			},
			{
				Keys: bson.D{
					{Key: "billno", Value: 1},
					{Key: "trackend", Value: 1},
				},
			},
			{
				Keys: bson.D{{Key: "schedule.eventdate", Value: 1}},
			},
		}

		_, err := collection.Indexes().CreateMany(ctx, indexes, options.CreateIndexes())
		if err != nil {
			log.Error().Err(err).Str("collection", collectionName).Msg("Creating Index")
		}
	}
}

func (i *Instance) createVesselIndexes(ctx context.Context) {
	shipsCollection := i.GetCollection("ships")
	shipsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "imo", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "mmsi", Value: 1}},
		},
	}

	_, err := shipsCollection.Indexes().CreateMany(ctx, shipsIndex, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Str("collection", "ships").Msg("Creating Index")
	}
}
