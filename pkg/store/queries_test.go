package store

import (
	"testing"
	"time"

	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDueForUpdateFilter(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	filter := dueForUpdateFilter(now)

	// Only active records are candidates.
	assert.Equal(t, nil, filter["trackend"])

	elemMatch := filter["schedule"].(bson.M)["$elemMatch"].(bson.M)
	assert.Equal(t, freight.EventStatusExpected, elemMatch["status"])
	assert.Equal(t, bson.M{"$lte": now}, elemMatch["eventdate"])
}

func TestFullyActualizedPipelineAllActual(t *testing.T) {
	pipeline := fullyActualizedPipeline(freight.ClosePolicyAllActual)
	require.Len(t, pipeline, 4)

	match := pipeline[0][0]
	assert.Equal(t, "$match", match.Key)
	assert.Equal(t, bson.M{"trackend": nil}, match.Value)

	addFields := pipeline[1][0]
	assert.Equal(t, "$addFields", addFields.Key)
	filter := addFields.Value.(bson.M)["actualonly"].(bson.M)["$filter"].(bson.M)
	assert.Equal(t, "$schedule", filter["input"])
	assert.Equal(t,
		bson.M{"$eq": bson.A{"$$item.status", freight.EventStatusActual}},
		filter["cond"])

	// Keep only records where every event is Actual.
	sizeMatch := pipeline[2][0]
	assert.Equal(t, "$match", sizeMatch.Key)
	assert.Equal(t, bson.M{"$expr": bson.M{
		"$eq": bson.A{bson.M{"$size": "$actualonly"}, bson.M{"$size": "$schedule"}},
	}}, sizeMatch.Value)
}

func TestFullyActualizedPipelineLastActual(t *testing.T) {
	pipeline := fullyActualizedPipeline(freight.ClosePolicyLastActual)
	require.Len(t, pipeline, 4)

	assert.Equal(t, bson.M{"trackend": nil}, pipeline[0][0].Value)

	addFields := pipeline[1][0]
	assert.Equal(t, bson.M{"lastevent": bson.M{"$last": "$schedule"}}, addFields.Value)

	lastMatch := pipeline[2][0]
	assert.Equal(t, "$match", lastMatch.Key)
	assert.Equal(t, bson.M{"lastevent.status": freight.EventStatusActual}, lastMatch.Value)
}

func TestFullyActualizedPipelinesDiffer(t *testing.T) {
	assert.NotEqual(t,
		fullyActualizedPipeline(freight.ClosePolicyAllActual),
		fullyActualizedPipeline(freight.ClosePolicyLastActual))
}

func TestVesselCandidatesPipeline(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	pipeline := vesselCandidatesPipeline(now)
	require.Len(t, pipeline, 6)

	assert.Equal(t, bson.M{"trackend": nil}, pipeline[0][0].Value)
	assert.Equal(t, "$unwind", pipeline[1][0].Key)
	assert.Equal(t, "$schedule", pipeline[1][0].Value)

	legMatch := pipeline[2][0].Value.(bson.M)
	assert.Equal(t, freight.EventStatusActual, legMatch["schedule.status"])
	assert.Equal(t, bson.M{"$lte": now}, legMatch["schedule.eventdate"])
	assert.Equal(t, bson.M{"$ne": ""}, legMatch["schedule.imo"])

	// Sorted by sequence number so $last keeps the latest leg per
	// container.
	assert.Equal(t, "$sort", pipeline[3][0].Key)
	group := pipeline[4][0].Value.(bson.M)
	assert.Equal(t, "$containerno", group["_id"])
	assert.Equal(t, bson.M{"$last": "$schedule.vesselname"}, group["vesselname"])
	assert.Equal(t, bson.M{"$last": "$schedule.imo"}, group["imo"])
}
