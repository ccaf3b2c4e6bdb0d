package normalize_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/normalize"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shotChartPayload = `{
  "resource": "shotchart",
  "resultSets": [
    {
      "name": "Shot_Chart_Detail",
      "headers": ["GRID_TYPE","GAME_ID","PLAYER_NAME","SHOT_TYPE","SHOT_DISTANCE","LOC_X","LOC_Y","SHOT_ATTEMPTED_FLAG","SHOT_MADE_FLAG"],
      "rowSet": [
        ["Shot Chart Detail","0022300001","Stephen Curry","2PT Field Goal",1,5,8,1,1],
        ["Shot Chart Detail","0022300001","Stephen Curry","3PT Field Goal",23,-225,40,1,0],
        ["Shot Chart Detail","0022300001","Stephen Curry","2PT Field Goal",null,null,null,1,1],
        ["Shot Chart Detail","0022300002","Stephen Curry","3PT Field Goal",26,10,255,1,1]
      ]
    },
    {
      "name": "LeagueAverages",
      "headers": ["GRID_TYPE","FGA","FGM"],
      "rowSet": [["League Averages",10,5]]
    }
  ]
}`

func TestNormalize_NBAStats(t *testing.T) {
	player := models.Player{ID: "201939", Name: "Stephen Curry"}

	table, err := normalize.Normalize([]byte(shotChartPayload), models.VariantNBAStats, normalize.Options{
		Player: player,
		Season: "2023-24",
	})
	require.NoError(t, err)

	assert.Equal(t, player, table.Player)
	assert.Equal(t, "2023-24", table.Season)
	assert.Equal(t, models.VariantNBAStats, table.Variant)
	assert.False(t, table.Synthetic)
	assert.Equal(t, models.EmptyNone, table.Empty)

	// null coordinates are dropped and not counted
	require.Equal(t, 3, table.Len())
	assert.Equal(t, 1, table.Dropped)

	first := table.Shots[0]
	assert.Equal(t, 5.0, first.LocX)
	assert.Equal(t, 8.0, first.LocY)
	assert.True(t, first.Made)
	assert.Equal(t, models.TwoPoint, first.ShotType)
	assert.InDelta(t, math.Hypot(5, 8), first.Distance, 1e-9)

	// upstream says three even though the corner distance is under the arc radius
	corner := table.Shots[1]
	assert.False(t, corner.Made)
	assert.Equal(t, models.ThreePoint, corner.ShotType)
	assert.Less(t, corner.Distance, models.ThreePointRadius)
}

func TestNormalize_NBAStatsFallsBackToDistance(t *testing.T) {
	payload := `{"resultSets":[{"name":"Shot_Chart_Detail",
		"headers":["LOC_X","LOC_Y","SHOT_MADE_FLAG"],
		"rowSet":[[0,300,1],[0,100,0]]}]}`

	table, err := normalize.Normalize([]byte(payload), models.VariantNBAStats, normalize.Options{})
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	assert.Equal(t, models.ThreePoint, table.Shots[0].ShotType)
	assert.Equal(t, models.TwoPoint, table.Shots[1].ShotType)
}

func TestNormalize_NBAStatsEmptyReasons(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    models.EmptyReason
		dropped int
	}{
		{
			name:    "no attempts",
			payload: `{"resultSets":[{"name":"Shot_Chart_Detail","headers":["LOC_X","LOC_Y","SHOT_MADE_FLAG"],"rowSet":[]}]}`,
			want:    models.EmptyNoAttempts,
		},
		{
			name:    "all rows dropped",
			payload: `{"resultSets":[{"name":"Shot_Chart_Detail","headers":["LOC_X","LOC_Y","SHOT_MADE_FLAG"],"rowSet":[[null,1,1],[2,null,0]]}]}`,
			want:    models.EmptyAllDropped,
			dropped: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := normalize.Normalize([]byte(tt.payload), models.VariantNBAStats, normalize.Options{})
			require.NoError(t, err)
			assert.True(t, table.IsEmpty())
			assert.Equal(t, tt.want, table.Empty)
			assert.Equal(t, tt.dropped, table.Dropped)
		})
	}
}

func TestNormalize_NBAStatsMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":        `{"resultSets":`,
		"missing result":  `{"resultSets":[{"name":"Other","headers":[],"rowSet":[]}]}`,
		"missing columns": `{"resultSets":[{"name":"Shot_Chart_Detail","headers":["LOC_X"],"rowSet":[]}]}`,
	}

	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := normalize.Normalize([]byte(payload), models.VariantNBAStats, normalize.Options{})
			assert.ErrorIs(t, err, normalize.ErrMalformedPayload)
		})
	}
}

func TestNormalize_UnknownVariant(t *testing.T) {
	_, err := normalize.Normalize([]byte(`{}`), models.SchemaVariant("espn"), normalize.Options{})
	assert.ErrorIs(t, err, normalize.ErrUnknownVariant)
}

const statisticsPayload = `{
  "get": "players/statistics",
  "errors": [],
  "results": 3,
  "response": [
    {"game": {"id": 1}, "points": 30, "fgm": 10, "fga": 20, "tpm": 4, "tpa": 9},
    {"game": {"id": 2}, "points": 12, "fgm": 5, "fga": 11, "tpm": 0, "tpa": 2},
    {"game": {"id": 3}, "points": 0, "fgm": null, "fga": null}
  ]
}`

func TestNormalize_APISportsRequiresSyntheticMode(t *testing.T) {
	_, err := normalize.Normalize([]byte(statisticsPayload), models.VariantAPISports, normalize.Options{})
	assert.ErrorIs(t, err, normalize.ErrNoShotLocations)
}

func TestNormalize_APISportsSynthetic(t *testing.T) {
	table, err := normalize.Normalize([]byte(statisticsPayload), models.VariantAPISports, normalize.Options{
		Synthetic: true,
		Rand:      rand.New(rand.NewSource(42)),
	})
	require.NoError(t, err)

	assert.True(t, table.Synthetic)
	require.Equal(t, 31, table.Len())

	made, threes, threesMade := 0, 0, 0
	for _, s := range table.Shots {
		assert.GreaterOrEqual(t, s.LocX, -250.0)
		assert.LessOrEqual(t, s.LocX, 250.0)
		assert.GreaterOrEqual(t, s.LocY, -47.5)
		assert.LessOrEqual(t, s.LocY, 422.5)
		assert.Equal(t, models.ClassifyDistance(s.Distance), s.ShotType)

		if s.Made {
			made++
		}
		if s.ShotType == models.ThreePoint {
			threes++
			if s.Made {
				threesMade++
			}
		}
	}

	assert.Equal(t, 15, made)
	assert.Equal(t, 11, threes)
	assert.Equal(t, 4, threesMade)
}

func TestNormalize_APISportsSyntheticIsSeeded(t *testing.T) {
	run := func() models.ShotTable {
		table, err := normalize.Normalize([]byte(statisticsPayload), models.VariantAPISports, normalize.Options{
			Synthetic: true,
			Rand:      rand.New(rand.NewSource(9)),
		})
		require.NoError(t, err)
		return table
	}

	assert.Equal(t, run().Shots, run().Shots)
}

func TestNormalize_APISportsWithoutThreeTotals(t *testing.T) {
	payload := `{"response":[{"fgm":3,"fga":5}]}`

	table, err := normalize.Normalize([]byte(payload), models.VariantAPISports, normalize.Options{
		Synthetic: true,
		Rand:      rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	require.Equal(t, 5, table.Len())

	made := 0
	for _, s := range table.Shots {
		assert.Equal(t, models.ClassifyDistance(s.Distance), s.ShotType)
		if s.Made {
			made++
		}
	}
	assert.Equal(t, 3, made)
}

func TestNormalize_APISportsNoAttempts(t *testing.T) {
	payload := `{"response":[{"fgm":0,"fga":0}]}`

	// zero attempts is an empty result even without synthetic mode
	table, err := normalize.Normalize([]byte(payload), models.VariantAPISports, normalize.Options{})
	require.NoError(t, err)
	assert.Equal(t, models.EmptyNoAttempts, table.Empty)
	assert.False(t, table.Synthetic)
}

func TestNormalize_APISportsMalformed(t *testing.T) {
	_, err := normalize.Normalize([]byte(`{"response": {}}`), models.VariantAPISports, normalize.Options{})
	assert.ErrorIs(t, err, normalize.ErrMalformedPayload)

	_, err = normalize.Normalize([]byte(`nope`), models.VariantAPISports, normalize.Options{})
	assert.ErrorIs(t, err, normalize.ErrMalformedPayload)
}

func TestNormalize_APISportsStringCounts(t *testing.T) {
	payload := `{"response":[
		{"fgm":"3","fga":"5","tpm":"1","tpa":"2"},
		{"fgm":2,"fga":4,"tpm":"0","tpa":1},
		{"fgm":"n/a","fga":"7"}
	]}`

	table, err := normalize.Normalize([]byte(payload), models.VariantAPISports, normalize.Options{
		Synthetic: true,
		Rand:      rand.New(rand.NewSource(5)),
	})
	require.NoError(t, err)
	require.Equal(t, 9, table.Len())

	made, threes, threesMade := 0, 0, 0
	for _, s := range table.Shots {
		if s.Made {
			made++
		}
		if s.ShotType == models.ThreePoint {
			threes++
			if s.Made {
				threesMade++
			}
		}
	}
	assert.Equal(t, 5, made)
	assert.Equal(t, 3, threes)
	assert.Equal(t, 1, threesMade)
}
