package dashboard_test

import (
	"testing"
	"time"

	"bcms/backend/internal/dashboard"
	"bcms/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func titled(title, owner string, created time.Time) models.Complaint {
	return models.Complaint{
		StudentID:   owner,
		Title:       title,
		Description: "d",
		Category:    models.CategoryOther,
		Status:      models.StatusPending,
		CreatedAt:   created,
	}
}

func titles(cs []models.Complaint) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Title)
	}
	return out
}

func TestSort_NewestAndOldest(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	input := []models.Complaint{
		titled("middle", "u1", base.Add(-time.Hour)),
		titled("newest", "u1", base),
		titled("oldest", "u1", base.Add(-2*time.Hour)),
	}

	assert.Equal(t, []string{"newest", "middle", "oldest"},
		titles(dashboard.Sort(input, dashboard.SortNewest, nil)))
	assert.Equal(t, []string{"oldest", "middle", "newest"},
		titles(dashboard.Sort(input, dashboard.SortOldest, nil)))
	// Input is untouched: Sort copies.
	assert.Equal(t, "middle", input[0].Title)
}

// Sorting an already newest-first list by newest again yields an
// identical sequence: ties keep their input order.
func TestSort_Stability(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	input := []models.Complaint{
		titled("a", "u1", base),
		titled("b", "u1", base), // same timestamp as a
		titled("c", "u1", base.Add(-time.Hour)),
		titled("d", "u1", base.Add(-time.Hour)), // same timestamp as c
	}

	once := dashboard.Sort(input, dashboard.SortNewest, nil)
	twice := dashboard.Sort(once, dashboard.SortNewest, nil)
	assert.Equal(t, titles(once), titles(twice))
	assert.Equal(t, []string{"a", "b", "c", "d"}, titles(twice))
}

func TestSort_ByOwnerName(t *testing.T) {
	base := time.Now()
	input := []models.Complaint{
		titled("1", "u-zoe", base),
		titled("2", "u-anna", base),
		titled("3", "u-marta", base),
	}
	names := map[string]string{
		"u-zoe":   "Zoe Quill",
		"u-anna":  "anna Bell", // collation ignores case
		"u-marta": "Márta Tóth",
	}

	got := dashboard.Sort(input, dashboard.SortOwner, names)
	assert.Equal(t, []string{"2", "3", "1"}, titles(got))
}

func TestSort_ByTitleCollated(t *testing.T) {
	base := time.Now()
	input := []models.Complaint{
		titled("Überfüllter Hörsaal", "u1", base),
		titled("broken chair", "u1", base),
		titled("Élevator stuck", "u1", base),
	}

	got := dashboard.Sort(input, dashboard.SortTitle, nil)
	// Unicode collation orders accented letters with their base letter,
	// not after 'z' as a byte comparison would.
	assert.Equal(t, []string{"broken chair", "Élevator stuck", "Überfüllter Hörsaal"}, titles(got))
}

func TestFilter_Conjunction(t *testing.T) {
	base := time.Now()
	staffID := "staff-1"

	a := titled("Wifi outage in dorm", "u-anna", base)
	a.Status = models.StatusPending
	b := titled("Projector broken", "u-zoe", base)
	b.Status = models.StatusInProgress
	b.AssignedTo = &staffID
	input := []models.Complaint{a, b}
	names := map[string]string{"u-anna": "Anna Bell", "u-zoe": "Zoe Quill"}

	// No constraints: everything passes.
	assert.Len(t, dashboard.Filter{}.Apply(input, names), 2)

	// Case-insensitive substring on title.
	got := dashboard.Filter{Query: "WIFI"}.Apply(input, names)
	assert.Equal(t, []string{"Wifi outage in dorm"}, titles(got))

	// Query also matches the owner display name.
	got = dashboard.Filter{Query: "zoe"}.Apply(input, names)
	assert.Equal(t, []string{"Projector broken"}, titles(got))

	// Exact status and assignee constraints.
	got = dashboard.Filter{Status: models.StatusInProgress}.Apply(input, names)
	assert.Equal(t, []string{"Projector broken"}, titles(got))
	got = dashboard.Filter{AssignedTo: "staff-1"}.Apply(input, names)
	assert.Equal(t, []string{"Projector broken"}, titles(got))

	// Conjunction: all set constraints must hold.
	got = dashboard.Filter{Query: "projector", Status: models.StatusPending}.Apply(input, names)
	assert.Empty(t, got)
}

func TestSplit_PreservesOrder(t *testing.T) {
	base := time.Now()
	staffID := "staff-1"

	a := titled("a", "u1", base)
	b := titled("b", "u1", base)
	b.AssignedTo = &staffID
	c := titled("c", "u1", base)

	part := dashboard.Split([]models.Complaint{a, b, c})
	assert.Equal(t, []string{"a", "c"}, titles(part.Unassigned))
	assert.Equal(t, []string{"b"}, titles(part.Assigned))
}

func TestParseSortKey_DefaultsToNewest(t *testing.T) {
	assert.Equal(t, dashboard.SortNewest, dashboard.ParseSortKey(""))
	assert.Equal(t, dashboard.SortNewest, dashboard.ParseSortKey("bogus"))
	assert.Equal(t, dashboard.SortOwner, dashboard.ParseSortKey("owner"))
}
