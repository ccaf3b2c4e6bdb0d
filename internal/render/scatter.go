package render

import (
	"github.com/ashwin-aggarwal/nba-shot-visualizer/internal/canvas"
	"github.com/ashwin-aggarwal/nba-shot-visualizer/pkg/models"
)

const (
	madeColor   = "green"
	missedColor = "red"
)

var (
	madeStyle   = canvas.Style{Fill: madeColor, Opacity: 0.7, Size: 3}
	missedStyle = canvas.Style{Fill: missedColor, Opacity: 0.7, Size: 3}
)

// Scatter plots every attempt as a marker coloured by outcome
func Scatter(s canvas.Surface, table models.ShotTable, agg models.AggregateStats, opts Options) {
	if backdrop(s, table, opts) {
		made, missed := Partition(table)
		for _, shot := range missed {
			s.Marker(canvas.Point{X: shot.LocX, Y: shot.LocY}, missedStyle)
		}
		for _, shot := range made {
			s.Marker(canvas.Point{X: shot.LocX, Y: shot.LocY}, madeStyle)
		}
		s.Legend([]canvas.LegendEntry{
			{Label: "Made", Color: madeColor},
			{Label: "Missed", Color: missedColor},
		})
	}
	annotate(s, table, agg)
}

// Partition splits a table into made and missed attempts, keeping order
func Partition(table models.ShotTable) (made, missed []models.ShotRecord) {
	for _, shot := range table.Shots {
		if shot.Made {
			made = append(made, shot)
		} else {
			missed = append(missed, shot)
		}
	}
	return made, missed
}
