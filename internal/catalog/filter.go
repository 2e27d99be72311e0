// Package catalog implements the storefront's pure catalog logic: the
// multi-criteria filter/sort engine, effective-price computation, the
// closed icon token set, and taxonomy slug derivation. Everything here
// is deterministic and free of I/O so it can be re-run on every input
// change and unit-tested without a database.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"souqly/internal/models"
)

// Pseudo-category navigation targets used by the storefront shell. They
// are not taxonomy rows; when one of them is active the category
// predicate matches every service.
const (
	NavHome     = "home"
	NavSettings = "settings"
)

// SortKey selects the ordering applied after filtering.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortPopularity SortKey = "popularity"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortNameAsc    SortKey = "name_asc"
	SortNameDesc   SortKey = "name_desc"
)

// ValidSortKey reports whether s is a known sort key.
func ValidSortKey(s SortKey) bool {
	switch s {
	case SortNewest, SortPopularity, SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc:
		return true
	}
	return false
}

// Query is the complete, explicit snapshot of storefront state the
// filter engine reads. Handlers build one per request; nothing in the
// engine mutates it, so identical queries always produce identical
// output.
type Query struct {
	// CategoryID is the active navigation target: a Category id or one
	// of the Nav* pseudo-categories.
	CategoryID string

	// Path is the selected subcategory drill-down: empty, [subcategory],
	// or [subcategory, secondSubcategory].
	Path []string

	// Search is matched case-insensitively against service name and
	// description. GlobalSearch widens a non-empty search across all
	// categories.
	Search       string
	GlobalSearch bool

	// Price bounds are inclusive. A nil bound defaults to 0 (min) or
	// +infinity (max).
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal

	// FavoritesOnly restricts results to the Favorites membership set.
	FavoritesOnly bool
	Favorites     map[string]struct{}

	// AdminMode lets the back office see inactive services.
	AdminMode bool

	Sort SortKey
}

// SubcategoryPending reports whether an empty result should be shown as
// "pick a subcategory" rather than "no results": the viewer is inside a
// real category that has subcategories, no path is selected, and no
// global search is overriding the navigation.
func (q Query) SubcategoryPending(hasSubcategories bool) bool {
	if q.CategoryID == NavHome || q.CategoryID == NavSettings {
		return false
	}
	if q.GlobalSearch && strings.TrimSpace(q.Search) != "" {
		return false
	}
	return hasSubcategories && len(q.Path) == 0
}

// Filter returns the services matching every predicate of q, in the
// order selected by q.Sort. The input slice is never modified and an
// empty result is a valid outcome, not an error.
func Filter(items []models.ServiceItem, q Query) []models.ServiceItem {
	out := make([]models.ServiceItem, 0, len(items))
	for _, item := range items {
		if matches(item, q) {
			out = append(out, item)
		}
	}
	sortItems(out, q.Sort)
	return out
}

// matches applies the predicates in spec order; all must hold.
func matches(item models.ServiceItem, q Query) bool {
	// 1. Visibility: inactive services are admin-only.
	if !item.Active && !q.AdminMode {
		return false
	}

	// 2. Category scope. Home/settings and active global search match
	// every category.
	search := strings.TrimSpace(q.Search)
	allCategories := q.CategoryID == NavHome || q.CategoryID == NavSettings ||
		(q.GlobalSearch && search != "")
	if !allCategories && item.CategoryID != q.CategoryID {
		return false
	}

	// 3. Subcategory path. A one-level path excludes leaf services so
	// they never leak into their parent's direct listing.
	switch len(q.Path) {
	case 0:
		// no path selected, always matches
	case 1:
		if item.SubcategoryID == nil || *item.SubcategoryID != q.Path[0] {
			return false
		}
		if item.SecondSubcategoryID != nil {
			return false
		}
	default:
		if item.SubcategoryID == nil || *item.SubcategoryID != q.Path[0] {
			return false
		}
		if item.SecondSubcategoryID == nil || *item.SecondSubcategoryID != q.Path[1] {
			return false
		}
	}

	// 4. Text search over name and description, case-insensitive.
	if search != "" {
		needle := strings.ToLower(search)
		if !strings.Contains(strings.ToLower(item.Name), needle) &&
			!strings.Contains(strings.ToLower(item.Description), needle) {
			return false
		}
	}

	// 5. Inclusive price bounds.
	if q.MinPrice != nil && item.Price.LessThan(*q.MinPrice) {
		return false
	}
	if q.MaxPrice != nil && item.Price.GreaterThan(*q.MaxPrice) {
		return false
	}

	// 6. Favorites-only.
	if q.FavoritesOnly {
		if _, ok := q.Favorites[item.ID]; !ok {
			return false
		}
	}

	return true
}

// sortItems orders items in place. The sort is stable: ties keep their
// original relative order so repeated calls are deterministic.
func sortItems(items []models.ServiceItem, key SortKey) {
	switch key {
	case SortPopularity:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Popularity > items[j].Popularity
		})
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.LessThan(items[j].Price)
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Price.GreaterThan(items[j].Price)
		})
	case SortNameAsc, SortNameDesc:
		c := collate.New(language.Und, collate.IgnoreCase)
		asc := key == SortNameAsc
		sort.SliceStable(items, func(i, j int) bool {
			cmp := c.CompareString(items[i].Name, items[j].Name)
			if asc {
				return cmp < 0
			}
			return cmp > 0
		})
	default:
		// newest first is the default ordering
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		})
	}
}
