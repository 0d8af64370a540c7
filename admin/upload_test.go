package admin

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/storage"
	"github.com/raushankrgupta/glory-storefront/store"
)

type failingInserts struct {
	*store.Memory
}

var errWrite = errors.New("permission denied")

func (failingInserts) InsertProduct(context.Context, *models.Product) error { return errWrite }
func (failingInserts) InsertModel(context.Context, *models.VehicleModel) error {
	return errWrite
}

func adminCtx() context.Context {
	return auth.WithSession(context.Background(), auth.Session{
		User:    &models.Identity{UserID: "admin"},
		IsAdmin: true,
	})
}

func newConsole(catalog store.CatalogStore) (*Console, *storage.Memory) {
	objects := storage.NewMemory("https://files.test")
	c := NewConsole(catalog, objects)
	c.SetClock(func() time.Time { return time.UnixMilli(1700000000000) })
	return c, objects
}

func file(name, body string) *File {
	return &File{Name: name, ContentType: "image/png", Body: strings.NewReader(body)}
}

func TestStateFor(t *testing.T) {
	tests := []struct {
		name string
		sess auth.Session
		want State
	}{
		{"signed out", auth.Session{}, Denied},
		{"not admin", auth.Session{User: &models.Identity{UserID: "u"}}, Denied},
		{"admin", auth.Session{User: &models.Identity{UserID: "u"}, IsAdmin: true}, Authorized},
		{"admin flag without user", auth.Session{IsAdmin: true}, Denied},
	}
	for _, tt := range tests {
		if got := StateFor(tt.sess); got != tt.want {
			t.Errorf("%s: StateFor = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestUploadProductEmptyNameMakesNoCalls(t *testing.T) {
	mem := store.NewMemory()
	c, objects := newConsole(mem)

	_, err := c.UploadProduct(adminCtx(), ProductForm{Name: "   ", Price: "10", Image: file("a.png", "x")})
	var ve *ValidationError
	if !errors.As(err, &ve) || len(ve.Missing) != 1 || ve.Missing[0] != "name" {
		t.Fatalf("expected missing name, got %v", err)
	}
	if objects.Puts != 0 {
		t.Errorf("object storage written %d times", objects.Puts)
	}
	if products, _ := mem.ListProducts(context.Background()); len(products) != 0 {
		t.Errorf("document store written: %+v", products)
	}
}

func TestUploadProduct(t *testing.T) {
	mem := store.NewMemory()
	c, objects := newConsole(mem)

	p, err := c.UploadProduct(adminCtx(), ProductForm{
		Name:        " Wiper ",
		Description: " Front wiper ",
		Price:       "12.5",
		Image:       file("wiper.png", "png"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Wiper" || p.Description != "Front wiper" || p.Price != 12.5 {
		t.Errorf("fields not trimmed/parsed: %+v", p)
	}
	if p.Image != "https://files.test/products/1700000000000_wiper.png" {
		t.Errorf("image url = %q", p.Image)
	}
	if _, ok := objects.Get("products/1700000000000_wiper.png"); !ok {
		t.Error("object not stored under products/")
	}
	if p.ID.IsZero() || p.CreatedAt.IsZero() {
		t.Error("record not stamped")
	}
}

func TestUploadProductWithoutImage(t *testing.T) {
	c, objects := newConsole(store.NewMemory())
	p, err := c.UploadProduct(adminCtx(), ProductForm{Name: "Mat", Price: "abc"})
	if err != nil {
		t.Fatal(err)
	}
	if p.Image != "" || p.Price != 0 {
		t.Errorf("expected empty image and zero price, got %+v", p)
	}
	if objects.Puts != 0 {
		t.Error("no file selected, nothing should be uploaded")
	}
}

func TestUploadProductNegativePrice(t *testing.T) {
	c, _ := newConsole(store.NewMemory())
	if _, err := c.UploadProduct(adminCtx(), ProductForm{Name: "Mat", Price: "-1"}); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUploadRequiresAdmin(t *testing.T) {
	c, objects := newConsole(store.NewMemory())
	userCtx := auth.WithSession(context.Background(), auth.Session{User: &models.Identity{UserID: "u"}})

	if _, err := c.UploadProduct(userCtx, ProductForm{Name: "x"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("product: %v", err)
	}
	if _, err := c.UploadVideo(context.Background(), VideoForm{Title: "x"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("video: %v", err)
	}
	if _, err := c.UploadModel(userCtx, ModelForm{Category: "a", Model: "b", Year: "c"}); !errors.Is(err, ErrForbidden) {
		t.Errorf("model: %v", err)
	}
	if _, err := c.UploadHomepageImage(userCtx, HomepageImageForm{Image: file("a.png", "x")}); !errors.Is(err, ErrForbidden) {
		t.Errorf("homepage image: %v", err)
	}
	if objects.Puts != 0 {
		t.Error("denied uploads must not reach object storage")
	}
}

func TestUploadModelSpecs(t *testing.T) {
	mem := store.NewMemory()
	c, _ := newConsole(mem)

	vm, err := c.UploadModel(adminCtx(), ModelForm{
		Category: "Passenger", Model: "Glory 330S", Year: "2022",
		Specs: `{"motor":"1.3L"}`,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(vm.Specs) != 1 || vm.Specs["motor"] != "1.3L" {
		t.Fatalf("specs = %v", vm.Specs)
	}

	vm, err = c.UploadModel(adminCtx(), ModelForm{Category: "Passenger", Model: "Glory 330S", Year: "2023"})
	if err != nil {
		t.Fatal(err)
	}
	if vm.Specs == nil || len(vm.Specs) != 0 {
		t.Fatalf("blank specs should be an empty mapping, got %#v", vm.Specs)
	}
}

func TestUploadModelMalformedSpecsAborts(t *testing.T) {
	mem := store.NewMemory()
	c, objects := newConsole(mem)

	_, err := c.UploadModel(adminCtx(), ModelForm{
		Category: "Passenger", Model: "Glory 330S", Year: "2022",
		Specs: `{bad json`,
		Image: file("330s.png", "png"),
	})
	if !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if objects.Puts != 0 {
		t.Error("malformed specs must not upload the image")
	}
	if vms, _ := mem.ListModels(context.Background()); len(vms) != 0 {
		t.Errorf("document store written: %+v", vms)
	}
}

func TestUploadModelMissingFields(t *testing.T) {
	c, _ := newConsole(store.NewMemory())
	_, err := c.UploadModel(adminCtx(), ModelForm{Model: "x"})
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if strings.Join(ve.Missing, ",") != "category,year" {
		t.Errorf("missing = %v", ve.Missing)
	}
}

func TestFailedWriteDeletesUploadedObject(t *testing.T) {
	c, objects := newConsole(failingInserts{store.NewMemory()})

	_, err := c.UploadProduct(adminCtx(), ProductForm{Name: "Wiper", Image: file("w.png", "png")})
	if !errors.Is(err, errWrite) {
		t.Fatalf("expected write error, got %v", err)
	}
	if objects.Deletes != 1 || objects.Len() != 0 {
		t.Fatalf("uploaded object not compensated: deletes=%d stored=%d", objects.Deletes, objects.Len())
	}
}

func TestFailedStorageSkipsWrite(t *testing.T) {
	mem := store.NewMemory()
	c, objects := newConsole(mem)
	objects.PutErr = errors.New("quota")

	if _, err := c.UploadModel(adminCtx(), ModelForm{Category: "a", Model: "b", Year: "c", Image: file("x.png", "x")}); err == nil {
		t.Fatal("expected error")
	}
	if vms, _ := mem.ListModels(context.Background()); len(vms) != 0 {
		t.Error("record written despite failed upload")
	}
}

func TestUploadVideo(t *testing.T) {
	mem := store.NewMemory()
	c, _ := newConsole(mem)

	v, err := c.UploadVideo(adminCtx(), VideoForm{Title: "Promo", Embed: `<iframe src="https://www.youtube.com/embed/x"></iframe>`})
	if err != nil {
		t.Fatal(err)
	}
	if v.URL != "" || v.Embed == "" {
		t.Errorf("unexpected video %+v", v)
	}

	if _, err := c.UploadVideo(adminCtx(), VideoForm{Title: "Bad", Embed: `<script>alert(1)</script>`}); !IsValidation(err) {
		t.Errorf("script embed should be rejected, got %v", err)
	}
	if _, err := c.UploadVideo(adminCtx(), VideoForm{}); !IsValidation(err) {
		t.Errorf("missing title should be rejected, got %v", err)
	}
}

func TestUploadHomepageImage(t *testing.T) {
	mem := store.NewMemory()
	c, objects := newConsole(mem)

	if _, err := c.UploadHomepageImage(adminCtx(), HomepageImageForm{Order: "1"}); !IsValidation(err) {
		t.Fatalf("missing file should be rejected, got %v", err)
	}
	if objects.Puts != 0 {
		t.Fatal("nothing should be uploaded without a file")
	}

	img, err := c.UploadHomepageImage(adminCtx(), HomepageImageForm{Order: "x", Image: file("hero.jpg", "jpg")})
	if err != nil {
		t.Fatal(err)
	}
	if img.Order != 0 || !strings.HasSuffix(img.URL, "/homepage/1700000000000_hero.jpg") {
		t.Errorf("unexpected image %+v", img)
	}
}

func TestParseOrder(t *testing.T) {
	tests := map[string]int{"": 0, "3": 3, " 7 ": 7, "2.9": 2, "-1": -1, "abc": 0}
	for in, want := range tests {
		if got := parseOrder(in); got != want {
			t.Errorf("parseOrder(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParseSpecs(t *testing.T) {
	for _, bad := range []string{"{bad json", "[1,2]", "null", `"text"`} {
		if _, err := ParseSpecs(bad); !IsValidation(err) {
			t.Errorf("ParseSpecs(%q) should fail validation, got %v", bad, err)
		}
	}
}

func TestRenderDeniedThenAuthorized(t *testing.T) {
	c, _ := newConsole(store.NewMemory())

	denied, _ := c.Render(auth.Session{}, "")
	if !strings.Contains(string(denied), "Not authorized") {
		t.Errorf("signed out should see Denied: %s", denied)
	}
	admin := auth.Session{User: &models.Identity{UserID: "a"}, IsAdmin: true}
	console, _ := c.Render(admin, "Product uploaded")
	if !strings.Contains(string(console), "admin-area") || !strings.Contains(string(console), "Product uploaded") {
		t.Errorf("admin should see console: %s", console)
	}
	again, _ := c.Render(auth.Session{User: admin.User}, "")
	if !strings.Contains(string(again), "Not authorized") {
		t.Error("revoked admin must see Denied on the next render")
	}
}
