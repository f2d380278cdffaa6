package dashboard_test

import (
	"testing"
	"time"

	"bcms/backend/internal/dashboard"
	"bcms/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func complaintCreatedAt(t time.Time) models.Complaint {
	return models.Complaint{
		StudentID:   "student-1",
		Title:       "t",
		Description: "d",
		Category:    models.CategoryOther,
		Status:      models.StatusPending,
		CreatedAt:   t,
	}
}

func TestHistogram_ZeroFilledBuckets(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	complaints := []models.Complaint{
		complaintCreatedAt(now),                      // T-0
		complaintCreatedAt(now.Add(-2 * time.Hour)),  // T-0, earlier that day
		complaintCreatedAt(now.AddDate(0, 0, -2)),    // T-2
		complaintCreatedAt(now.AddDate(0, 0, -6)),    // T-6
	}

	hist := dashboard.Histogram(complaints, now)

	assert.Len(t, hist, 7)
	counts := make([]int, 0, 7)
	for _, bucket := range hist {
		counts = append(counts, bucket.Count)
	}
	// Oldest day first: T-6 .. T-0.
	assert.Equal(t, []int{1, 0, 0, 0, 1, 0, 2}, counts)

	// Buckets are calendar-day midnights, oldest first.
	assert.Equal(t, time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), hist[0].Day)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), hist[6].Day)
}

func TestHistogram_OutsideWindowIgnored(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	complaints := []models.Complaint{
		complaintCreatedAt(now.AddDate(0, 0, -7)), // one day past the window
		complaintCreatedAt(now.AddDate(0, 0, -30)),
	}

	hist := dashboard.Histogram(complaints, now)
	for _, bucket := range hist {
		assert.Zero(t, bucket.Count)
	}
}

func TestOverdue_Threshold(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	old := complaintCreatedAt(now.AddDate(0, 0, -4)) // pending, unassigned, 4 days old
	old.Title = "old"
	recent := complaintCreatedAt(now.AddDate(0, 0, -2))
	recent.Title = "recent"

	overdue := dashboard.Overdue([]models.Complaint{old, recent}, now)
	assert.Len(t, overdue, 1)
	assert.Equal(t, "old", overdue[0].Title)
}

func TestOverdue_RequiresPendingAndUnassigned(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	staffID := "staff-1"

	assigned := complaintCreatedAt(now.AddDate(0, 0, -5))
	assigned.AssignedTo = &staffID

	resolved := complaintCreatedAt(now.AddDate(0, 0, -5))
	resolved.Status = models.StatusResolved

	overdue := dashboard.Overdue([]models.Complaint{assigned, resolved}, now)
	assert.Empty(t, overdue)
}

func TestCountsByStatus_ZeroFilled(t *testing.T) {
	counts := dashboard.CountsByStatus(nil)
	assert.Equal(t, map[models.Status]int{
		models.StatusPending:    0,
		models.StatusInProgress: 0,
		models.StatusResolved:   0,
	}, counts)

	c := complaintCreatedAt(time.Now())
	c.Status = models.StatusResolved
	counts = dashboard.CountsByStatus([]models.Complaint{c, c, complaintCreatedAt(time.Now())})
	assert.Equal(t, 2, counts[models.StatusResolved])
	assert.Equal(t, 1, counts[models.StatusPending])
}

func TestCountsByCategory_CoversAllCategories(t *testing.T) {
	counts := dashboard.CountsByCategory(nil)
	assert.Len(t, counts, len(models.Categories))
	for _, cat := range models.Categories {
		assert.Contains(t, counts, cat)
	}
}
