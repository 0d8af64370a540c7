package api

import (
	"net/http"
	"time"

	"github.com/raushankrgupta/glory-storefront/admin"
	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/cart"
	"github.com/raushankrgupta/glory-storefront/catalog"
	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/utils"
)

// Options are the request-path settings taken from config. AssetsDir is
// served under /assets/ when set.
type Options struct {
	SignInURL        string
	DefaultHeroImage string
	SlideInterval    time.Duration
	MaxUploadBytes   int64
	SecureCookies    bool
	AssetsDir        string
}

// Server holds the handlers' dependencies.
type Server struct {
	gate     *auth.Gate
	catalog  store.CatalogStore
	renderer *catalog.Renderer
	carts    *cart.Service
	console  *admin.Console
	opts     Options
}

// NewServer wires the storefront services over one catalog store. The catalog
// should already be wrapped by the cache, if one is used.
func NewServer(gate *auth.Gate, catalogStore store.CatalogStore, carts store.CartStore, console *admin.Console, opts Options) *Server {
	if opts.SlideInterval <= 0 {
		opts.SlideInterval = 5 * time.Second
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 64 << 20
	}
	if opts.SignInURL == "" {
		opts.SignInURL = "/login.html"
	}
	return &Server{
		gate:     gate,
		catalog:  catalogStore,
		renderer: catalog.NewRenderer(catalogStore),
		carts:    cart.NewService(carts),
		console:  console,
		opts:     opts,
	}
}

// Routes returns the full handler chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.HomeHandler)
	mux.HandleFunc("GET /models", s.ModelsHandler)
	mux.HandleFunc("GET /models/{id}", s.ModelDetailHandler)
	mux.HandleFunc("GET /videos", s.VideosHandler)
	mux.HandleFunc("GET /hero/stream", s.HeroStreamHandler)

	mux.HandleFunc("POST /auth/session", s.SignInHandler)
	mux.HandleFunc("POST /auth/signout", s.SignOutHandler)

	mux.HandleFunc("GET /cart", s.CartHandler)
	mux.HandleFunc("DELETE /cart", s.ClearCartHandler)
	mux.HandleFunc("POST /cart/items", s.AddToCartHandler)
	mux.HandleFunc("DELETE /cart/items/{id}", s.RemoveFromCartHandler)

	mux.HandleFunc("GET /admin", s.AdminHandler)
	mux.HandleFunc("POST /admin/products", s.UploadProductHandler)
	mux.HandleFunc("POST /admin/videos", s.UploadVideoHandler)
	mux.HandleFunc("POST /admin/models", s.UploadModelHandler)
	mux.HandleFunc("POST /admin/homepage-images", s.UploadHomepageImageHandler)

	if s.opts.AssetsDir != "" {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(s.opts.AssetsDir))))
	}

	return utils.LatencyMiddleware(utils.CORSMiddleware(s.gate.Middleware(mux)))
}
