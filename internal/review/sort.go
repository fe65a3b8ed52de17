package review

import (
	"sort"

	"shopfront/internal/model"
)

// SortKey orders a review listing.
type SortKey string

const (
	SortRecent  SortKey = "recent"
	SortHighest SortKey = "highest"
	SortHelpful SortKey = "helpful"
)

// ParseSortKey validates s. An empty string means SortRecent.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(s); k {
	case "":
		return SortRecent, nil
	case SortRecent, SortHighest, SortHelpful:
		return k, nil
	default:
		return "", model.ErrInvalidSort
	}
}

// Sort returns a copy of reviews ordered by key. Ties keep their incoming order.
func Sort(reviews []model.Review, key SortKey) []model.Review {
	out := make([]model.Review, len(reviews))
	copy(out, reviews)

	switch key {
	case SortHighest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Rating > out[j].Rating
		})
	case SortHelpful:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Helpful > out[j].Helpful
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}
