package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

const shotChartResultSet = "Shot_Chart_Detail"

// stats.nba.com returns column-oriented result sets
type nbaStatsPayload struct {
	ResultSets []nbaResultSet `json:"resultSets"`
}

type nbaResultSet struct {
	Name    string          `json:"name"`
	Headers []string        `json:"headers"`
	RowSet  [][]interface{} `json:"rowSet"`
}

func (rs nbaResultSet) index(header string) int {
	for i, h := range rs.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

func fromNBAStats(payload []byte, opts Options) (models.ShotTable, error) {
	var body nbaStatsPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return models.ShotTable{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	var rs *nbaResultSet
	for i := range body.ResultSets {
		if body.ResultSets[i].Name == shotChartResultSet {
			rs = &body.ResultSets[i]
			break
		}
	}
	if rs == nil {
		return models.ShotTable{}, fmt.Errorf("%w: result set %s not found", ErrMalformedPayload, shotChartResultSet)
	}

	idxX, idxY := rs.index("LOC_X"), rs.index("LOC_Y")
	idxMade, idxType := rs.index("SHOT_MADE_FLAG"), rs.index("SHOT_TYPE")
	if idxX < 0 || idxY < 0 || idxMade < 0 {
		return models.ShotTable{}, fmt.Errorf("%w: missing LOC_X/LOC_Y/SHOT_MADE_FLAG columns", ErrMalformedPayload)
	}

	table := models.ShotTable{Shots: make([]models.ShotRecord, 0, len(rs.RowSet))}
	for _, row := range rs.RowSet {
		x := maybe[float64](cell(row, idxX))
		y := maybe[float64](cell(row, idxY))
		if x == nil || y == nil {
			table.Dropped++
			continue
		}

		made := false
		if flag := maybe[float64](cell(row, idxMade)); flag != nil {
			made = *flag == 1
		}

		var shotType models.ShotType
		if label := maybe[string](cell(row, idxType)); label != nil {
			shotType = parseShotType(*label)
		}

		table.Shots = append(table.Shots, models.NewShotRecord(*x, *y, made, shotType))
	}

	return table, nil
}

// parseShotType maps "3PT Field Goal" / "2PT Field Goal"; anything else is
// left for distance classification
func parseShotType(label string) models.ShotType {
	switch label {
	case "3PT Field Goal":
		return models.ThreePoint
	case "2PT Field Goal":
		return models.TwoPoint
	default:
		return ""
	}
}

func cell(row []interface{}, idx int) interface{} {
	if idx < 0 || idx >= len(row) {
		return nil
	}
	return row[idx]
}

func maybe[T any](x any) *T {
	if x, ok := x.(T); ok {
		return &x
	}
	return nil
}
