package dashboard

import (
	"time"

	"bcms/backend/internal/config"
	"bcms/backend/internal/models"
)

// CountsByStatus tallies complaints per lifecycle status. Every status
// appears in the result, including zero counts.
func CountsByStatus(complaints []models.Complaint) map[models.Status]int {
	counts := map[models.Status]int{
		models.StatusPending:    0,
		models.StatusInProgress: 0,
		models.StatusResolved:   0,
	}
	for _, c := range complaints {
		counts[c.Status]++
	}
	return counts
}

// CountsByCategory tallies complaints per category, zero-filled.
func CountsByCategory(complaints []models.Complaint) map[models.Category]int {
	counts := make(map[models.Category]int, len(models.Categories))
	for _, cat := range models.Categories {
		counts[cat] = 0
	}
	for _, c := range complaints {
		counts[c.Category]++
	}
	return counts
}

// DayCount is one calendar-day bucket of the creation histogram.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// Histogram buckets complaint creation times over the trailing seven
// calendar days, oldest day first. Days with no complaints render as
// zero rather than being omitted. Bucketing is by calendar day in now's
// location.
func Histogram(complaints []models.Complaint, now time.Time) []DayCount {
	loc := now.Location()
	byDay := make(map[string]int)
	for _, c := range complaints {
		byDay[c.CreatedAt.In(loc).Format("2006-01-02")]++
	}

	out := make([]DayCount, 0, config.HistogramDays)
	for i := config.HistogramDays - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		out = append(out, DayCount{
			Day:   midnight,
			Count: byDay[midnight.Format("2006-01-02")],
		})
	}
	return out
}

// Overdue returns the complaints still pending with nobody assigned
// after the overdue threshold, in input order.
func Overdue(complaints []models.Complaint, now time.Time) []models.Complaint {
	out := []models.Complaint{}
	for _, c := range complaints {
		if c.Status == models.StatusPending && c.AssignedTo == nil &&
			now.Sub(c.CreatedAt) > config.OverdueThreshold {
			out = append(out, c)
		}
	}
	return out
}
