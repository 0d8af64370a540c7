package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/storage"
)

// Object key prefixes per upload kind.
const (
	ProductsPrefix = "products"
	VideosPrefix   = "videos"
	ModelsPrefix   = "models"
	HomepagePrefix = "homepage"
)

type ProductForm struct {
	Name        string
	Description string
	Price       string
	Image       *File
}

type VideoForm struct {
	Title string
	Embed string
	File  *File
}

type ModelForm struct {
	Category string
	Model    string
	Year     string
	Specs    string
	Image    *File
}

type HomepageImageForm struct {
	Order string
	Image *File
}

// UploadProduct stores the optional image and creates a product record.
func (c *Console) UploadProduct(ctx context.Context, form ProductForm) (*models.Product, error) {
	if err := requireAdmin(auth.SessionFrom(ctx)); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(form.Name)
	if m := missing([2]string{"name", name}); m != nil {
		return nil, &ValidationError{Missing: m}
	}
	price, err := parsePrice(form.Price)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        name,
		Description: strings.TrimSpace(form.Description),
		Price:       price,
	}
	err = c.withUpload(ctx, ProductsPrefix, form.Image, func(url string) error {
		product.Image = url
		return c.catalog.InsertProduct(ctx, product)
	})
	if err != nil {
		return nil, wrap("product", err)
	}
	return product, nil
}

// UploadVideo stores the optional video file and creates a video record.
func (c *Console) UploadVideo(ctx context.Context, form VideoForm) (*models.Video, error) {
	if err := requireAdmin(auth.SessionFrom(ctx)); err != nil {
		return nil, err
	}
	title := strings.TrimSpace(form.Title)
	if m := missing([2]string{"title", title}); m != nil {
		return nil, &ValidationError{Missing: m}
	}
	embed := strings.TrimSpace(form.Embed)
	if err := checkEmbed(embed); err != nil {
		return nil, err
	}

	video := &models.Video{Title: title, Embed: embed}
	err := c.withUpload(ctx, VideosPrefix, form.File, func(url string) error {
		video.URL = url
		return c.catalog.InsertVideo(ctx, video)
	})
	if err != nil {
		return nil, wrap("video", err)
	}
	return video, nil
}

// UploadModel validates and parses the specs before touching object storage,
// so malformed specs never leave an orphaned image behind.
func (c *Console) UploadModel(ctx context.Context, form ModelForm) (*models.VehicleModel, error) {
	if err := requireAdmin(auth.SessionFrom(ctx)); err != nil {
		return nil, err
	}
	category := strings.TrimSpace(form.Category)
	model := strings.TrimSpace(form.Model)
	year := strings.TrimSpace(form.Year)
	if m := missing([2]string{"category", category}, [2]string{"model", model}, [2]string{"year", year}); m != nil {
		return nil, &ValidationError{Missing: m}
	}
	specs, err := ParseSpecs(form.Specs)
	if err != nil {
		return nil, err
	}

	vm := &models.VehicleModel{
		Category: category,
		Model:    model,
		Year:     year,
		Specs:    specs,
	}
	err = c.withUpload(ctx, ModelsPrefix, form.Image, func(url string) error {
		vm.Image = url
		return c.catalog.InsertModel(ctx, vm)
	})
	if err != nil {
		return nil, wrap("model", err)
	}
	return vm, nil
}

// UploadHomepageImage requires a file; order defaults to 0.
func (c *Console) UploadHomepageImage(ctx context.Context, form HomepageImageForm) (*models.HomepageImage, error) {
	if err := requireAdmin(auth.SessionFrom(ctx)); err != nil {
		return nil, err
	}
	if form.Image == nil {
		return nil, &ValidationError{Missing: []string{"image"}}
	}

	img := &models.HomepageImage{Order: parseOrder(form.Order)}
	err := c.withUpload(ctx, HomepagePrefix, form.Image, func(url string) error {
		img.URL = url
		return c.catalog.InsertHomepageImage(ctx, img)
	})
	if err != nil {
		return nil, wrap("homepage image", err)
	}
	return img, nil
}

// withUpload puts file (when present) under prefix and passes its URL to
// write. If write fails the uploaded object is deleted again.
func (c *Console) withUpload(ctx context.Context, prefix string, file *File, write func(url string) error) error {
	if file == nil {
		return write("")
	}

	key := storage.ObjectKey(prefix, file.Name, c.now())
	url, err := c.objects.Put(ctx, key, file.Body, file.ContentType)
	if err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	if err := write(url); err != nil {
		if delErr := c.objects.Delete(ctx, key); delErr != nil {
			log.Printf("orphaned object %s left after failed write: %v", key, delErr)
		}
		return err
	}
	return nil
}

// ParseSpecs decodes the specifications text as a JSON object. Blank text
// is an empty mapping.
func ParseSpecs(text string) (map[string]interface{}, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return map[string]interface{}{}, nil
	}
	var specs map[string]interface{}
	if err := json.Unmarshal([]byte(text), &specs); err != nil || specs == nil {
		return nil, &ValidationError{Reason: "specifications must be a valid JSON object"}
	}
	return specs, nil
}

// parsePrice treats unparsable input as 0.
func parsePrice(text string) (float64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, nil
	}
	if price < 0 {
		return 0, &ValidationError{Reason: "price must not be negative"}
	}
	return price, nil
}

// parseOrder treats unparsable input as 0 and truncates decimals.
func parseOrder(text string) int {
	text = strings.TrimSpace(text)
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return int(f)
	}
	return 0
}

func checkEmbed(markup string) error {
	if markup == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return &ValidationError{Reason: "embed markup could not be parsed"}
	}
	if doc.Find("script").Length() > 0 {
		return &ValidationError{Reason: "embed markup must not contain scripts"}
	}
	return nil
}
