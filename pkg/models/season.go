package models

import (
	"fmt"
	"strconv"
)

// ValidateSeason checks the "YYYY-YY" form used by the NBA, e.g. "2023-24"
func ValidateSeason(season string) error {
	_, err := SeasonStartYear(season)
	return err
}

// SeasonStartYear returns 2023 for "2023-24"
func SeasonStartYear(season string) (int, error) {
	if len(season) != 7 || season[4] != '-' || !allDigits(season[:4]) || !allDigits(season[5:]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, season)
	}

	start, err := strconv.Atoi(season[:4])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, season)
	}
	end, err := strconv.Atoi(season[5:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, season)
	}

	if (start+1)%100 != end {
		return 0, fmt.Errorf("%w: %q does not span consecutive years", ErrInvalidSeason, season)
	}

	return start, nil
}

// FormatSeason returns "2023-24" for 2023
func FormatSeason(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// SeasonRange lists seasons starting in [from, to] oldest first
func SeasonRange(from, to int) []string {
	if to < from {
		return nil
	}
	seasons := make([]string, 0, to-from+1)
	for year := from; year <= to; year++ {
		seasons = append(seasons, FormatSeason(year))
	}
	return seasons
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
