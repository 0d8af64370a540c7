package cache

import (
	"context"
	"sync"

	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/store"
)

// CatalogStore serves listings from a Catalog cache and drops the cached
// listing of a collection whenever a record is inserted into it.
//
// Each collection carries a generation that inserts bump. A listing loaded
// while an insert ran is returned to its caller but never written back, so
// a stale read cannot overwrite the invalidation.
type CatalogStore struct {
	store.CatalogStore
	cache Catalog

	mu          sync.Mutex
	generations map[string]uint64
}

func NewCatalogStore(inner store.CatalogStore, c Catalog) *CatalogStore {
	return &CatalogStore{CatalogStore: inner, cache: c, generations: make(map[string]uint64)}
}

func (s *CatalogStore) generation(collection string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generations[collection]
}

// fill stores a loaded listing only if no insert touched the collection
// since the load began.
func (s *CatalogStore) fill(ctx context.Context, collection string, loadedAt uint64, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generations[collection] != loadedAt {
		return
	}
	s.cache.Set(ctx, collection, value)
}

func (s *CatalogStore) invalidate(ctx context.Context, collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[collection]++
	s.cache.Invalidate(ctx, collection)
}

func cached[T any](ctx context.Context, s *CatalogStore, collection string, load func(context.Context) ([]T, error)) ([]T, error) {
	var out []T
	if s.cache.Get(ctx, collection, &out) {
		return out, nil
	}
	gen := s.generation(collection)
	out, err := load(ctx)
	if err != nil {
		return nil, err
	}
	s.fill(ctx, collection, gen, out)
	return out, nil
}

func (s *CatalogStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return cached(ctx, s, models.ProductsCollection, s.CatalogStore.ListProducts)
}

func (s *CatalogStore) ListModels(ctx context.Context) ([]models.VehicleModel, error) {
	return cached(ctx, s, models.ModelsCollection, s.CatalogStore.ListModels)
}

func (s *CatalogStore) ListVideos(ctx context.Context) ([]models.Video, error) {
	return cached(ctx, s, models.VideosCollection, s.CatalogStore.ListVideos)
}

func (s *CatalogStore) ListHomepageImages(ctx context.Context) ([]models.HomepageImage, error) {
	return cached(ctx, s, models.HomepageImagesCollection, s.CatalogStore.ListHomepageImages)
}

func (s *CatalogStore) InsertProduct(ctx context.Context, p *models.Product) error {
	defer s.invalidate(ctx, models.ProductsCollection)
	return s.CatalogStore.InsertProduct(ctx, p)
}

func (s *CatalogStore) InsertVideo(ctx context.Context, v *models.Video) error {
	defer s.invalidate(ctx, models.VideosCollection)
	return s.CatalogStore.InsertVideo(ctx, v)
}

func (s *CatalogStore) InsertModel(ctx context.Context, vm *models.VehicleModel) error {
	defer s.invalidate(ctx, models.ModelsCollection)
	return s.CatalogStore.InsertModel(ctx, vm)
}

func (s *CatalogStore) InsertHomepageImage(ctx context.Context, img *models.HomepageImage) error {
	defer s.invalidate(ctx, models.HomepageImagesCollection)
	return s.CatalogStore.InsertHomepageImage(ctx, img)
}
