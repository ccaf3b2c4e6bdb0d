package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/redis/go-redis/v9"
)

// DefaultStream is the stream comparison summaries are appended to
const DefaultStream = "shotcharts.comparisons"

// defaultMaxLen keeps the stream bounded; trimming is approximate
const defaultMaxLen = 10000

// StreamPublisher publishes comparison summaries to a Redis stream
type StreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewStreamPublisher creates a new stream publisher
func NewStreamPublisher(client *redis.Client, stream string) *StreamPublisher {
	if stream == "" {
		stream = DefaultStream
	}
	return &StreamPublisher{
		client: client,
		stream: stream,
		maxLen: defaultMaxLen,
	}
}

// Stream returns the target stream key
func (p *StreamPublisher) Stream() string {
	return p.stream
}

// PublishComparison appends one comparison summary to the stream
func (p *StreamPublisher) PublishComparison(ctx context.Context, summary *models.ComparisonSummary) error {
	values, err := streamValues(summary)
	if err != nil {
		return err
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Err()
	if err != nil {
		return fmt.Errorf("publishing comparison %s: %w", summary.ID, err)
	}
	return nil
}

// streamValues flattens a summary into stream entry fields
func streamValues(summary *models.ComparisonSummary) (map[string]interface{}, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("marshaling comparison: %w", err)
	}

	return map[string]interface{}{
		"data":          string(data),
		"comparison_id": summary.ID,
		"provider":      summary.Provider,
		"season":        summary.Season,
		"outcome":       summary.Outcome,
	}, nil
}
