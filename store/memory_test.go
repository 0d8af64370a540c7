package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/raushankrgupta/glory-storefront/models"
)

func tickingClock() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func TestAddItemSameProductTwice(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	item := models.CartItem{ID: "p1", Name: "Wiper", Price: 10}

	if _, err := m.AddItem(ctx, "u1", item); err != nil {
		t.Fatal(err)
	}
	cart, err := m.AddItem(ctx, "u1", item)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	if cart.Items[0].Qty != 2 {
		t.Fatalf("expected qty 2, got %d", cart.Items[0].Qty)
	}
}

func TestAddItemDistinctProducts(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.AddItem(ctx, "u1", models.CartItem{ID: "p1"})
	cart, _ := m.AddItem(ctx, "u1", models.CartItem{ID: "p2"})

	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Items))
	}
	for _, it := range cart.Items {
		if it.Qty != 1 {
			t.Errorf("item %s: expected qty 1, got %d", it.ID, it.Qty)
		}
	}
	if cart.Items[0].ID != "p1" || cart.Items[1].ID != "p2" {
		t.Errorf("lines out of insertion order: %+v", cart.Items)
	}
}

func TestAddItemZeroQuantityCountsAsOne(t *testing.T) {
	m := NewMemory()
	m.PutCart(models.Cart{UserID: "u1", Items: []models.CartItem{{ID: "p1", Qty: 0}}})

	cart, _ := m.AddItem(context.Background(), "u1", models.CartItem{ID: "p1"})
	if cart.Items[0].Qty != 2 {
		t.Fatalf("expected qty 2, got %d", cart.Items[0].Qty)
	}
}

func TestAddItemConcurrent(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.AddItem(ctx, "u1", models.CartItem{ID: "p1"})
		}()
	}
	wg.Wait()

	cart, _ := m.GetCart(ctx, "u1")
	if len(cart.Items) != 1 || cart.Items[0].Qty != 50 {
		t.Fatalf("lost update: %+v", cart.Items)
	}
}

func TestGetCartAbsent(t *testing.T) {
	cart, err := NewMemory().GetCart(context.Background(), "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if cart.Items == nil || len(cart.Items) != 0 {
		t.Fatalf("expected empty item list, got %#v", cart.Items)
	}
}

func TestRemoveItem(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	m.AddItem(ctx, "u1", models.CartItem{ID: "p1"})
	m.AddItem(ctx, "u1", models.CartItem{ID: "p2"})

	cart, _ := m.RemoveItem(ctx, "u1", "p1")
	if len(cart.Items) != 1 || cart.Items[0].ID != "p2" {
		t.Fatalf("unexpected items after remove: %+v", cart.Items)
	}
}

func TestListOrdering(t *testing.T) {
	m := NewMemory()
	m.SetClock(tickingClock())
	ctx := context.Background()

	m.InsertProduct(ctx, &models.Product{Name: "old"})
	m.InsertProduct(ctx, &models.Product{Name: "new"})
	products, _ := m.ListProducts(ctx)
	if products[0].Name != "new" || products[1].Name != "old" {
		t.Errorf("products not newest first: %v, %v", products[0].Name, products[1].Name)
	}

	m.InsertHomepageImage(ctx, &models.HomepageImage{URL: "A", Order: 2})
	m.InsertHomepageImage(ctx, &models.HomepageImage{URL: "B", Order: 1})
	images, _ := m.ListHomepageImages(ctx)
	if images[0].URL != "B" || images[1].URL != "A" {
		t.Errorf("homepage images not ordered: %v, %v", images[0].URL, images[1].URL)
	}

	m.InsertModel(ctx, &models.VehicleModel{Category: "Trucks", Model: "T5", Year: "2023"})
	m.InsertModel(ctx, &models.VehicleModel{Category: "Cars", Model: "330S", Year: "2022"})
	vms, _ := m.ListModels(ctx)
	if vms[0].Category != "Cars" {
		t.Errorf("models not ordered by category: %v", vms[0].Category)
	}
	if vms[0].Specs == nil {
		t.Error("specs should default to an empty mapping")
	}
}

func TestGetRoleMissing(t *testing.T) {
	_, err := NewMemory().GetRole(context.Background(), "u1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetModelByID(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	vm := &models.VehicleModel{Category: "Cars", Model: "330S", Year: "2022", Specs: map[string]interface{}{"motor": "1.3L"}}
	m.InsertModel(ctx, vm)

	got, err := m.GetModel(ctx, vm.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if got.Specs["motor"] != "1.3L" {
		t.Errorf("specs lost: %v", got.Specs)
	}
	if _, err := m.GetModel(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
