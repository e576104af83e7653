// Package schedule decides whether an application is stale.
package schedule

import (
	"time"

	"github.com/glkt/upkeep/internal/models"
	"github.com/glkt/upkeep/internal/utils"
)

// DateLayout is the calendar-day precision format of persisted update dates.
const DateLayout = "2006-01-02"

// ShouldUpdate reports whether app needs refreshing given its last update
// record. Pure except for the file-presence probe on file artifacts.
func ShouldUpdate(app *models.Application, rec models.UpdateRecord, now time.Time, force bool) bool {
	if force {
		return true
	}
	if rec.UpdateDate == "" {
		return true
	}
	if app.EffectiveFrequency() == models.Daily {
		return true
	}
	if app.Type == models.TypeFile {
		if ok, _ := utils.FileExists(app.Destination); !ok {
			return true
		}
	}

	then, err := time.Parse(DateLayout, rec.UpdateDate)
	if err != nil {
		// Unreadable date is the same as never updated.
		return true
	}

	days := daysBetween(then, now)

	switch app.EffectiveFrequency() {
	case models.Weekly:
		return days > 6
	case models.Monthly:
		return days > 29
	case models.Semestrial:
		return days > 87
	}
	// Frequencies are validated at load time; anything else is refetched.
	return true
}

func daysBetween(then, now time.Time) int {
	t := truncateDay(then)
	n := truncateDay(now)
	return int(n.Sub(t).Hours() / 24)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
