// Package views renders the storefront's HTML.
package views

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/raushankrgupta/glory-storefront/config"
	"github.com/raushankrgupta/glory-storefront/models"
)

// Container IDs a page can declare.
const (
	HeroCarousel = "hero-carousel"
	ProductsGrid = "products-grid"
	ModelsList   = "models-list"
	VideosGrid   = "videos-grid"
	AdminRegion  = "admin"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"price": FormatPrice,
	"image": imageOrPlaceholder,
	"specs": prettySpecs,
	// Embed markup is admin-supplied and checked on upload.
	"embed": func(s string) template.HTML { return template.HTML(s) },
}).ParseFS(templateFS, "templates/*.html"))

// FormatPrice renders a price as "$12.50".
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

const placeholderImage = "assets/logo.png"

// PlaceholderImage is shown wherever a record has no uploaded image.
func PlaceholderImage() string {
	if config.DefaultHeroImage != "" {
		return config.DefaultHeroImage
	}
	return placeholderImage
}

func imageOrPlaceholder(src string) string {
	if src == "" {
		return PlaceholderImage()
	}
	return src
}

func prettySpecs(specs map[string]interface{}) string {
	if specs == nil {
		specs = map[string]interface{}{}
	}
	b, err := json.MarshalIndent(specs, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}

func fragment(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// Message renders a status line such as "No products yet.".
func Message(text string) template.HTML {
	h, err := fragment("message", text)
	if err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return h
}

func Products(products []models.Product) (template.HTML, error) {
	return fragment("products", products)
}

func Models(groups []models.CategoryGroup) (template.HTML, error) {
	return fragment("models", groups)
}

func Videos(videos []models.Video) (template.HTML, error) {
	return fragment("videos", videos)
}

// SliderView is what the hero carousel needs to render one frame.
type SliderView struct {
	Images          []string
	Active          int
	Prev            int
	Next            int
	IntervalSeconds int
	Alt             string
}

func Slider(v SliderView) (template.HTML, error) {
	return fragment("slider", v)
}

func AdminDenied() (template.HTML, error) {
	return fragment("admin_denied", nil)
}

// AdminConsole renders the four upload forms with an optional notice.
func AdminConsole(notice string) (template.HTML, error) {
	return fragment("admin_console", notice)
}

// ModelDetail writes the standalone detail document of one model year.
func ModelDetail(w io.Writer, vm *models.VehicleModel) error {
	return templates.ExecuteTemplate(w, "model_detail", vm)
}
