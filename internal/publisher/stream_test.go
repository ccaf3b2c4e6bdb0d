package publisher_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/publisher"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *models.ComparisonSummary {
	return &models.ComparisonSummary{
		ID:       "2f1c7a52-9c56-4a7e-8f0b-6f3b1f0f9d11",
		Provider: "nbastats",
		Season:   "2023-24",
		Outcome:  "partial",
		Players: []models.PlayerSummary{
			{Query: "Stephen Curry", Player: &models.Player{ID: "201939", Name: "Stephen Curry"}},
			{Query: "Zzyzx Nobody", ErrorKind: "resolution_failure", Error: "no player found"},
		},
		StartedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestStreamValues(t *testing.T) {
	values, err := publisher.StreamValues(sampleSummary())
	require.NoError(t, err)

	assert.Equal(t, "2f1c7a52-9c56-4a7e-8f0b-6f3b1f0f9d11", values["comparison_id"])
	assert.Equal(t, "nbastats", values["provider"])
	assert.Equal(t, "2023-24", values["season"])
	assert.Equal(t, "partial", values["outcome"])

	var decoded models.ComparisonSummary
	require.NoError(t, json.Unmarshal([]byte(values["data"].(string)), &decoded))
	assert.Equal(t, *sampleSummary(), decoded)
}

func TestNewStreamPublisher_DefaultStream(t *testing.T) {
	p := publisher.NewStreamPublisher(nil, "")
	assert.Equal(t, publisher.DefaultStream, p.Stream())
}

func TestPublishComparison_Redis(t *testing.T) {
	redisURL := os.Getenv("REDIS_TEST_URL")
	if redisURL == "" || testing.Short() {
		t.Skip("REDIS_TEST_URL not set")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())

	stream := "test.shotcharts.comparisons"
	t.Cleanup(func() { client.Del(context.Background(), stream) })

	p := publisher.NewStreamPublisher(client, stream)
	require.NoError(t, p.PublishComparison(ctx, sampleSummary()))

	entries, err := client.XRange(ctx, stream, "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "partial", entries[0].Values["outcome"])
}
