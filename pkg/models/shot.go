package models

import "math"

// ThreePointRadius is the distance (court units) from the basket beyond which
// a shot is classified as a three when no upstream classification exists
const ThreePointRadius = 237.5

// ShotType classifies a field goal attempt
type ShotType string

const (
	TwoPoint   ShotType = "2PT"
	ThreePoint ShotType = "3PT"
)

// SchemaVariant identifies the upstream payload shape a ShotTable was built from
type SchemaVariant string

const (
	VariantNBAStats  SchemaVariant = "nbastats"  // per-shot rows with LOC_X/LOC_Y
	VariantAPISports SchemaVariant = "apisports" // per-game fga/fgm aggregates
)

// EmptyReason explains why a ShotTable has no rows
type EmptyReason string

const (
	EmptyNone       EmptyReason = ""
	EmptyNoAttempts EmptyReason = "no_attempts" // upstream reported zero attempts
	EmptyAllDropped EmptyReason = "all_dropped" // upstream rows existed but none were valid
)

// ShotRecord is one field goal attempt in court units (0.1 ft, basket at origin)
type ShotRecord struct {
	LocX     float64  `json:"loc_x"`
	LocY     float64  `json:"loc_y"`
	Made     bool     `json:"made"`
	ShotType ShotType `json:"shot_type"`
	Distance float64  `json:"distance"`
}

// NewShotRecord builds a record, computing distance from the coordinates and
// classifying by distance when shotType is empty
func NewShotRecord(x, y float64, made bool, shotType ShotType) ShotRecord {
	distance := math.Hypot(x, y)
	if shotType == "" {
		shotType = ClassifyDistance(distance)
	}
	return ShotRecord{
		LocX:     x,
		LocY:     y,
		Made:     made,
		ShotType: shotType,
		Distance: distance,
	}
}

// ClassifyDistance applies the three-point threshold
func ClassifyDistance(distance float64) ShotType {
	if distance > ThreePointRadius {
		return ThreePoint
	}
	return TwoPoint
}

// ShotTable holds every valid attempt for one player in one season.
// It is built once per pipeline run and not modified afterwards.
type ShotTable struct {
	Player    Player        `json:"player"`
	Season    string        `json:"season"`
	Variant   SchemaVariant `json:"variant"`
	Shots     []ShotRecord  `json:"shots"`
	Synthetic bool          `json:"synthetic"` // coordinates are generated, not observed
	Dropped   int           `json:"dropped"`   // rows removed for missing coordinates
	Empty     EmptyReason   `json:"empty,omitempty"`
}

// Len returns the number of attempts
func (t ShotTable) Len() int {
	return len(t.Shots)
}

// IsEmpty reports whether there is nothing to plot
func (t ShotTable) IsEmpty() bool {
	return len(t.Shots) == 0
}

// AggregateStats is a read-only summary of a ShotTable
type AggregateStats struct {
	TotalAttempts      int     `json:"total_attempts"`
	MadeCount          int     `json:"made_count"`
	FGPercent          float64 `json:"fg_percent"`
	ThreePointAttempts int     `json:"three_point_attempts"`
	ThreePointMade     int     `json:"three_point_made"`
	ThreePointPercent  float64 `json:"three_point_percent"`
	TwoPointAttempts   int     `json:"two_point_attempts"`
	AverageDistance    float64 `json:"average_distance"` // court units
}

// Player is an upstream player identity
type Player struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
