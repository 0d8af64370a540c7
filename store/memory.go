package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/raushankrgupta/glory-storefront/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Memory is an in-process Store for local development and tests.
// Every method holds one lock, so cart updates are atomic like the Mongo ones.
type Memory struct {
	mu       sync.Mutex
	now      func() time.Time
	roles    map[string]models.Role
	products []models.Product
	vmodels  []models.VehicleModel
	videos   []models.Video
	images   []models.HomepageImage
	carts    map[string]*models.Cart
}

func NewMemory() *Memory {
	return &Memory{
		now:   func() time.Time { return time.Now().UTC() },
		roles: make(map[string]models.Role),
		carts: make(map[string]*models.Cart),
	}
}

// SetClock replaces the timestamp source used for created_at/updated_at.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// PutRole stands in for the out-of-band process that grants roles.
func (m *Memory) PutRole(role models.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.roles[role.UserID] = role
}

func (m *Memory) GetRole(ctx context.Context, userID string) (*models.Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	role, ok := m.roles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &role, nil
}

func (m *Memory) ListProducts(ctx context.Context) ([]models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Product(nil), m.products...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListModels(ctx context.Context) ([]models.VehicleModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.VehicleModel, len(m.vmodels))
	for i, vm := range m.vmodels {
		out[i] = vm
		out[i].Specs = copySpecs(vm.Specs)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (m *Memory) ListVideos(ctx context.Context) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.Video(nil), m.videos...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ListHomepageImages(ctx context.Context) ([]models.HomepageImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := append([]models.HomepageImage(nil), m.images...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (m *Memory) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.products {
		if p.ID.Hex() == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) GetModel(ctx context.Context, id string) (*models.VehicleModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, vm := range m.vmodels {
		if vm.ID.Hex() == id {
			vm.Specs = copySpecs(vm.Specs)
			return &vm, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Memory) InsertProduct(ctx context.Context, p *models.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = m.now()
	m.products = append(m.products, *p)
	return nil
}

func (m *Memory) InsertVideo(ctx context.Context, v *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v.ID = primitive.NewObjectID()
	v.CreatedAt = m.now()
	m.videos = append(m.videos, *v)
	return nil
}

func (m *Memory) InsertModel(ctx context.Context, vm *models.VehicleModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	vm.ID = primitive.NewObjectID()
	vm.CreatedAt = m.now()
	if vm.Specs == nil {
		vm.Specs = map[string]interface{}{}
	}
	stored := *vm
	stored.Specs = copySpecs(vm.Specs)
	m.vmodels = append(m.vmodels, stored)
	return nil
}

func (m *Memory) InsertHomepageImage(ctx context.Context, img *models.HomepageImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	img.ID = primitive.NewObjectID()
	img.CreatedAt = m.now()
	m.images = append(m.images, *img)
	return nil
}

func (m *Memory) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cartCopy(userID), nil
}

func (m *Memory) AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[userID]
	if !ok {
		cart = &models.Cart{UserID: userID}
		m.carts[userID] = cart
	}

	found := false
	for i := range cart.Items {
		if cart.Items[i].ID == item.ID {
			cart.Items[i].Qty = cart.Items[i].EffectiveQty() + 1
			found = true
			break
		}
	}
	if !found {
		item.Qty = 1
		cart.Items = append(cart.Items, item)
	}
	cart.UpdatedAt = m.now()
	return m.cartCopy(userID), nil
}

func (m *Memory) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cart, ok := m.carts[userID]; ok {
		kept := cart.Items[:0]
		for _, it := range cart.Items {
			if it.ID != productID {
				kept = append(kept, it)
			}
		}
		cart.Items = kept
		cart.UpdatedAt = m.now()
	}
	return m.cartCopy(userID), nil
}

func (m *Memory) ClearCart(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cart, ok := m.carts[userID]; ok {
		cart.Items = nil
		cart.UpdatedAt = m.now()
	}
	return nil
}

// PutCart overwrites a cart wholesale; used to seed legacy documents.
func (m *Memory) PutCart(cart models.Cart) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := cart
	c.Items = append([]models.CartItem(nil), cart.Items...)
	m.carts[cart.UserID] = &c
}

func (m *Memory) cartCopy(userID string) *models.Cart {
	cart, ok := m.carts[userID]
	if !ok {
		return &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}
	out := *cart
	out.Items = append([]models.CartItem{}, cart.Items...)
	return &out
}

func copySpecs(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
