package catalog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"souqly/internal/models"
)

func strPtr(s string) *string { return &s }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func svc(id, name, category string, price int64) models.ServiceItem {
	return models.ServiceItem{
		Base:       models.Base{ID: id, CreatedAt: time.Unix(1700000000, 0)},
		Name:       name,
		CategoryID: category,
		Price:      decimal.NewFromInt(price),
		Currency:   "USD",
		Active:     true,
	}
}

func ids(items []models.ServiceItem) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []models.ServiceItem, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("expected %v, got %v", want, gotIDs)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, gotIDs)
		}
	}
}

func TestFilterCategoryScope(t *testing.T) {
	gaming := svc("s1", "Game Pass", "GAMING", 100)
	gaming.PromoPrice = decPtr(80)
	streaming := svc("s2", "Stream Plus", "STREAMING", 50)
	items := []models.ServiceItem{gaming, streaming}

	t.Run("active_category_matches_exactly", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING"})
		assertIDs(t, got, "s1")

		price, promo := EffectivePrice(got[0].Price, got[0].PromoPrice)
		if !promo {
			t.Error("expected promo to be applied")
		}
		if !price.Equal(decimal.NewFromInt(80)) {
			t.Errorf("expected effective price 80, got %s", price)
		}
	})

	t.Run("home_matches_all_categories", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: NavHome})
		if len(got) != 2 {
			t.Fatalf("expected 2 services, got %d", len(got))
		}
	})

	t.Run("global_search_overrides_category", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", Search: "stream", GlobalSearch: true})
		assertIDs(t, got, "s2")
	})

	t.Run("global_search_flag_without_text_keeps_category_scope", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", GlobalSearch: true})
		assertIDs(t, got, "s1")
	})
}

func TestFilterVisibility(t *testing.T) {
	inactive := svc("s1", "Hidden", "GAMING", 10)
	inactive.Active = false
	items := []models.ServiceItem{inactive}

	t.Run("inactive_excluded_for_customers", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING"})
		if len(got) != 0 {
			t.Fatalf("expected inactive service to be excluded, got %d results", len(got))
		}
	})

	t.Run("inactive_visible_in_admin_mode", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", AdminMode: true})
		assertIDs(t, got, "s1")
	})
}

func TestFilterSubcategoryPath(t *testing.T) {
	a := svc("a", "eSIM Basic", "TELECOM", 10)
	a.SubcategoryID = strPtr("ESIM")
	b := svc("b", "eSIM Plus", "TELECOM", 20)
	b.SubcategoryID = strPtr("ESIM")
	leaf := svc("c", "eSIM Premium Global", "TELECOM", 30)
	leaf.SubcategoryID = strPtr("ESIM")
	leaf.SecondSubcategoryID = strPtr("ESIM_PREMIUM")
	items := []models.ServiceItem{a, b, leaf}

	t.Run("one_level_path_excludes_leaf_services", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "TELECOM", Path: []string{"ESIM"}, Sort: SortPriceAsc})
		assertIDs(t, got, "a", "b")
	})

	t.Run("two_level_path_matches_leaf_only", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "TELECOM", Path: []string{"ESIM", "ESIM_PREMIUM"}})
		assertIDs(t, got, "c")
	})

	t.Run("no_path_matches_all_in_category", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "TELECOM"})
		if len(got) != 3 {
			t.Fatalf("expected 3 services, got %d", len(got))
		}
	})
}

func TestFilterPriceBounds(t *testing.T) {
	items := []models.ServiceItem{
		svc("cheap", "Cheap", "GAMING", 10),
		svc("mid", "Mid", "GAMING", 60),
		svc("high", "High", "GAMING", 200),
	}

	t.Run("min_set_max_unbounded", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", MinPrice: decPtr(50), Sort: SortPriceAsc})
		assertIDs(t, got, "mid", "high")
	})

	t.Run("bounds_are_inclusive", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", MinPrice: decPtr(60), MaxPrice: decPtr(60)})
		assertIDs(t, got, "mid")
	})
}

func TestFilterSearch(t *testing.T) {
	a := svc("a", "Netflix Premium", "STREAMING", 15)
	a.Description = "4K streaming plan"
	b := svc("b", "Spotify", "STREAMING", 10)
	b.Description = "Music, no ads"
	items := []models.ServiceItem{a, b}

	t.Run("case_insensitive_name_match", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "STREAMING", Search: "NETFLIX"})
		assertIDs(t, got, "a")
	})

	t.Run("description_match", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "STREAMING", Search: "no ads"})
		assertIDs(t, got, "b")
	})

	t.Run("no_match_is_empty_not_error", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "STREAMING", Search: "zzz"})
		if got == nil || len(got) != 0 {
			t.Fatalf("expected empty non-nil slice, got %v", got)
		}
	})
}

func TestFilterFavoritesOnly(t *testing.T) {
	items := []models.ServiceItem{
		svc("a", "A", "GAMING", 10),
		svc("b", "B", "GAMING", 20),
	}
	got := Filter(items, Query{
		CategoryID:    "GAMING",
		FavoritesOnly: true,
		Favorites:     map[string]struct{}{"b": {}},
	})
	assertIDs(t, got, "b")
}

func TestFilterSorting(t *testing.T) {
	oldest := svc("old", "Bravo", "GAMING", 30)
	oldest.CreatedAt = time.Unix(1000, 0)
	oldest.Popularity = 5
	newest := svc("new", "alpha", "GAMING", 10)
	newest.CreatedAt = time.Unix(3000, 0)
	newest.Popularity = 9
	mid := svc("mid", "Charlie", "GAMING", 20)
	mid.CreatedAt = time.Unix(2000, 0)
	mid.Popularity = 9
	items := []models.ServiceItem{oldest, newest, mid}

	t.Run("default_newest_first", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING"})
		assertIDs(t, got, "new", "mid", "old")
	})

	t.Run("popularity_desc_stable_ties", func(t *testing.T) {
		// new and mid tie on popularity; input order (new before mid) must hold
		got := Filter(items, Query{CategoryID: "GAMING", Sort: SortPopularity})
		assertIDs(t, got, "new", "mid", "old")
	})

	t.Run("price_desc", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", Sort: SortPriceDesc})
		assertIDs(t, got, "old", "mid", "new")
	})

	t.Run("name_asc_ignores_case", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", Sort: SortNameAsc})
		assertIDs(t, got, "new", "old", "mid")
	})

	t.Run("name_desc", func(t *testing.T) {
		got := Filter(items, Query{CategoryID: "GAMING", Sort: SortNameDesc})
		assertIDs(t, got, "mid", "old", "new")
	})
}

func TestFilterDeterministic(t *testing.T) {
	items := []models.ServiceItem{
		svc("a", "Alpha", "GAMING", 10),
		svc("b", "Beta", "GAMING", 10),
		svc("c", "Gamma", "GAMING", 10),
	}
	q := Query{CategoryID: "GAMING", Sort: SortPriceAsc}

	first := Filter(items, q)
	second := Filter(items, q)

	assertIDs(t, second, ids(first)...)

	// input slice must not be reordered
	if items[0].ID != "a" || items[1].ID != "b" || items[2].ID != "c" {
		t.Error("Filter modified its input slice")
	}
}

func TestSubcategoryPending(t *testing.T) {
	t.Run("no_path_with_subcategories", func(t *testing.T) {
		q := Query{CategoryID: "TELECOM"}
		if !q.SubcategoryPending(true) {
			t.Error("expected subcategory picker signal")
		}
	})

	t.Run("path_selected", func(t *testing.T) {
		q := Query{CategoryID: "TELECOM", Path: []string{"ESIM"}}
		if q.SubcategoryPending(true) {
			t.Error("expected no picker signal once a path is selected")
		}
	})

	t.Run("pseudo_category", func(t *testing.T) {
		q := Query{CategoryID: NavHome}
		if q.SubcategoryPending(true) {
			t.Error("home never asks for a subcategory")
		}
	})

	t.Run("global_search_active", func(t *testing.T) {
		q := Query{CategoryID: "TELECOM", Search: "esim", GlobalSearch: true}
		if q.SubcategoryPending(true) {
			t.Error("global search bypasses the picker")
		}
	})
}
