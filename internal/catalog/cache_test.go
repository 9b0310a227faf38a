package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/ordering-next/internal/models"
)

type fakeSource struct {
	items []models.Item
	err   error
}

func (f *fakeSource) FetchItems(ctx context.Context) ([]models.Item, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func TestReloadReplacesWholesale(t *testing.T) {
	cache := NewCache()
	source := &fakeSource{items: []models.Item{
		{ID: "A", Name: "Salad"},
		{ID: "B", Name: "Soup"},
	}}

	if err := cache.Reload(context.Background(), source); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if cache.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", cache.Len())
	}

	source.items = []models.Item{{ID: "C", Name: "Bread"}}
	if err := cache.Reload(context.Background(), source); err != nil {
		t.Fatalf("second reload failed: %v", err)
	}

	if _, ok := cache.Get("A"); ok {
		t.Fatalf("expected old item dropped on reload")
	}
	item, ok := cache.Get("C")
	if !ok || item.Name != "Bread" {
		t.Fatalf("expected new item present, got %+v ok=%v", item, ok)
	}
}

func TestReloadFailureKeepsSnapshot(t *testing.T) {
	cache := NewCache()
	source := &fakeSource{items: []models.Item{{ID: "A"}}}
	if err := cache.Reload(context.Background(), source); err != nil {
		t.Fatalf("reload failed: %v", err)
	}

	source.err = errors.New("upstream down")
	if err := cache.Reload(context.Background(), source); err == nil {
		t.Fatalf("expected reload error")
	}

	if _, ok := cache.Get("A"); !ok {
		t.Fatalf("expected previous snapshot kept after failed reload")
	}
}

func TestItemsKeepLoadOrder(t *testing.T) {
	cache := NewCache()
	cache.Replace([]models.Item{{ID: "B"}, {ID: "A"}, {ID: "C"}})

	items := cache.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].ID != "B" || items[1].ID != "A" || items[2].ID != "C" {
		t.Fatalf("unexpected order: %v", items)
	}
}
