package dashboard

import (
	"sort"

	"bcms/backend/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey selects the one ordering applied to a complaint list.
type SortKey string

const (
	SortNewest SortKey = "newest" // created_at descending
	SortOldest SortKey = "oldest" // created_at ascending
	SortOwner  SortKey = "owner"  // owner display name, collated ascending
	SortTitle  SortKey = "title"  // title, collated ascending
)

// ParseSortKey maps a query parameter to a SortKey, defaulting to newest.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortOldest:
		return SortOldest
	case SortOwner:
		return SortOwner
	case SortTitle:
		return SortTitle
	default:
		return SortNewest
	}
}

// Sort returns a new slice ordered by the given key. The sort is stable:
// ties keep their input order, so re-sorting an already ordered list
// yields an identical sequence. Name and title comparisons are
// locale-aware (Unicode collation, case-insensitive).
func Sort(complaints []models.Complaint, key SortKey, ownerNames map[string]string) []models.Complaint {
	out := make([]models.Complaint, len(complaints))
	copy(out, complaints)

	var less func(i, j int) bool
	switch key {
	case SortOldest:
		less = func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) }
	case SortOwner:
		coll := collate.New(language.Und, collate.IgnoreCase)
		less = func(i, j int) bool {
			return coll.CompareString(ownerNames[out[i].StudentID], ownerNames[out[j].StudentID]) < 0
		}
	case SortTitle:
		coll := collate.New(language.Und, collate.IgnoreCase)
		less = func(i, j int) bool {
			return coll.CompareString(out[i].Title, out[j].Title) < 0
		}
	default: // SortNewest
		less = func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) }
	}

	sort.SliceStable(out, less)
	return out
}
