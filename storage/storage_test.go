package storage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObjectKey(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	tests := []struct {
		name     string
		prefix   string
		filename string
		want     string
	}{
		{"plain", "products", "wiper.png", "products/1700000000123_wiper.png"},
		{"strips directories", "models", "C:\\Users\\me\\330s.jpg", "models/1700000000123_330s.jpg"},
		{"strips unix dirs", "videos", "../../etc/promo.mp4", "videos/1700000000123_promo.mp4"},
		{"empty name", "homepage", "", "homepage/1700000000123_upload"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ObjectKey(tt.prefix, tt.filename, now); got != tt.want {
				t.Errorf("ObjectKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMemoryPutDelete(t *testing.T) {
	m := NewMemory("http://files.local")
	ctx := context.Background()

	url, err := m.Put(ctx, "products/1_a.png", strings.NewReader("png"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if url != "http://files.local/products/1_a.png" {
		t.Errorf("unexpected url %q", url)
	}
	obj, ok := m.Get("products/1_a.png")
	if !ok || string(obj.Data) != "png" || obj.ContentType != "image/png" {
		t.Fatalf("object not stored: %+v", obj)
	}

	if err := m.Delete(ctx, "products/1_a.png"); err != nil {
		t.Fatal(err)
	}
	if m.Len() != 0 {
		t.Errorf("expected no objects, got %d", m.Len())
	}
}

func TestMemoryServesStoredObjects(t *testing.T) {
	m := NewMemory("/uploads")
	url, err := m.Put(context.Background(), "products/1_a.png", strings.NewReader("png"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	handler := http.StripPrefix("/uploads", m)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "png" || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("got %d %q %q", rec.Code, rec.Body, rec.Header().Get("Content-Type"))
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/uploads/missing.png", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing object: status %d", rec.Code)
	}
}

func TestMemoryEscapesKeysInURLs(t *testing.T) {
	m := NewMemory("/uploads")
	key := "products/1_promo #1.png"
	url, err := m.Put(context.Background(), key, strings.NewReader("png"), "image/png")
	if err != nil {
		t.Fatal(err)
	}
	if url != "/uploads/products/1_promo%20%231.png" {
		t.Fatalf("unexpected url %q", url)
	}

	rec := httptest.NewRecorder()
	http.StripPrefix("/uploads", m).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "png" {
		t.Errorf("escaped url did not resolve: %d %q", rec.Code, rec.Body)
	}
}
