package repositories

import (
	"testing"

	"lenslink/internal/models"
)

func orderedItems(ids ...int) []models.PortfolioItem {
	items := make([]models.PortfolioItem, len(ids))
	for i, id := range ids {
		items[i] = models.PortfolioItem{ID: id, Order: i}
	}
	return items
}

func assertSequence(t *testing.T, items []models.PortfolioItem, wantIDs ...int) {
	t.Helper()
	if len(items) != len(wantIDs) {
		t.Fatalf("expected %d items, got %d", len(wantIDs), len(items))
	}
	for i, item := range items {
		if item.ID != wantIDs[i] {
			t.Fatalf("position %d: expected item %d, got %d", i, wantIDs[i], item.ID)
		}
		if item.Order != i {
			t.Fatalf("item %d: expected order %d, got %d", item.ID, i, item.Order)
		}
	}
}

func TestRenumberItemsReorder(t *testing.T) {
	items := orderedItems(10, 20, 30)
	out := renumberItems(items, map[int]int{30: 0, 10: 2})
	assertSequence(t, out, 30, 20, 10)
}

func TestRenumberItemsIdentityIsStable(t *testing.T) {
	items := orderedItems(10, 20, 30)
	overrides := map[int]int{10: 0, 20: 1, 30: 2}
	out := renumberItems(items, overrides)
	assertSequence(t, out, 10, 20, 30)

	// Applying the resulting order again must not change anything.
	out = renumberItems(out, overrides)
	assertSequence(t, out, 10, 20, 30)
}

func TestRenumberItemsIgnoresUnknownIDs(t *testing.T) {
	items := orderedItems(10, 20, 30)
	out := renumberItems(items, map[int]int{99: 0})
	assertSequence(t, out, 10, 20, 30)
}

func TestRenumberItemsAfterDelete(t *testing.T) {
	// Items 10, 20, 30 at orders 0, 1, 2; the middle one was deleted.
	items := []models.PortfolioItem{
		{ID: 10, Order: 0},
		{ID: 30, Order: 2},
	}
	out := renumberItems(items, nil)
	assertSequence(t, out, 10, 30)
}

func TestRenumberItemsTiesKeepRelativeOrder(t *testing.T) {
	items := orderedItems(10, 20, 30)
	// Both 10 and 20 claim order 5, past item 30; 10 comes first in the
	// current sequence and must stay ahead of 20.
	out := renumberItems(items, map[int]int{10: 5, 20: 5})
	assertSequence(t, out, 30, 10, 20)
}
