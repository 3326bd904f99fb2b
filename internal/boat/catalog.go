package boat

import (
	"sort"
	"strings"
)

// Matches reports whether b satisfies every predicate in f.
func Matches(b *Boat, f Filter) bool {
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(b.Name), q) &&
			!strings.Contains(strings.ToLower(b.Description), q) {
			return false
		}
	}

	if len(f.Categories) > 0 && !hasAnyCategory(b, f.Categories) {
		return false
	}

	if f.MinPrice != nil && b.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && b.Price > *f.MaxPrice {
		return false
	}
	if f.MinCapacity != nil && b.Capacity < *f.MinCapacity {
		return false
	}
	return true
}

func hasAnyCategory(b *Boat, wanted []string) bool {
	for _, w := range wanted {
		for _, c := range b.Categories {
			if c == w {
				return true
			}
		}
	}
	return false
}

// Sort orders boats in place. Ties keep their incoming order.
func Sort(boats []*Boat, by SortBy) {
	var less func(a, b *Boat) bool
	switch by {
	case SortPriceAsc:
		less = func(a, b *Boat) bool { return a.Price < b.Price }
	case SortPriceDesc:
		less = func(a, b *Boat) bool { return a.Price > b.Price }
	case SortNewest:
		less = func(a, b *Boat) bool { return a.ID > b.ID }
	default:
		less = func(a, b *Boat) bool { return a.Rating > b.Rating }
	}
	sort.SliceStable(boats, func(i, j int) bool { return less(boats[i], boats[j]) })
}

// Paginate returns the page-th slice of perPage items. Out-of-range pages are empty.
func Paginate(boats []*Boat, page, perPage int) []*Boat {
	start := (page - 1) * perPage
	if start >= len(boats) || start < 0 {
		return []*Boat{}
	}
	end := start + perPage
	if end > len(boats) {
		end = len(boats)
	}
	return boats[start:end]
}

// Apply filters, sorts and paginates boats. It returns the requested page and
// the number of boats matching the filter before pagination. f must be normalized.
func Apply(boats []*Boat, f Filter) ([]*Boat, int) {
	matched := make([]*Boat, 0, len(boats))
	for _, b := range boats {
		if Matches(b, f) {
			matched = append(matched, b)
		}
	}
	Sort(matched, f.SortBy)
	return Paginate(matched, f.Page, f.PerPage), len(matched)
}
