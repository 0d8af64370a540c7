package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/slider"
	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/utils"
	"github.com/raushankrgupta/glory-storefront/views"
)

func (s *Server) newPage(r *http.Request, title string, containers ...string) *views.Page {
	page := views.NewPage(title, containers...)
	sess := auth.SessionFrom(r.Context())
	page.SignedIn = sess.SignedIn()
	page.IsAdmin = sess.IsAdmin
	return page
}

func writePage(w http.ResponseWriter, logger *strings.Builder, page *views.Page, status int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Render(w); err != nil {
		utils.AddToLogMessage(logger, fmt.Sprintf("Error rendering page: %v", err))
	}
}

// HomeHandler renders the hero carousel and the products grid
func (s *Server) HomeHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Home")

	slide, _ := strconv.Atoi(r.URL.Query().Get("slide"))

	page := s.newPage(r, "Glory Shop", views.HeroCarousel, views.ProductsGrid)
	slider.LoadHomepageImages(r.Context(), page, s.catalog, s.opts.DefaultHeroImage, slide, s.opts.SlideInterval, &logMessageBuilder)
	s.renderer.LoadProducts(r.Context(), page, &logMessageBuilder)

	writePage(w, &logMessageBuilder, page, http.StatusOK)
}

// ModelsHandler renders the models list
func (s *Server) ModelsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Models")

	page := s.newPage(r, "Models", views.ModelsList)
	s.renderer.LoadModels(r.Context(), page, &logMessageBuilder)

	writePage(w, &logMessageBuilder, page, http.StatusOK)
}

// ModelDetailHandler renders one model year with its specifications
func (s *Server) ModelDetailHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Model Detail")

	id := r.PathValue("id")
	vm, err := s.renderer.ModelDetail(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Model not found: %s", id))
			http.Error(w, "Model not found", http.StatusNotFound)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, err.Error())
		http.Error(w, "Error loading model", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.ModelDetail(w, vm); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error rendering model: %v", err))
	}
}

// VideosHandler renders the videos grid
func (s *Server) VideosHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Videos")

	page := s.newPage(r, "Videos", views.VideosGrid)
	s.renderer.LoadVideos(r.Context(), page, &logMessageBuilder)

	writePage(w, &logMessageBuilder, page, http.StatusOK)
}

// HeroStreamHandler pushes the active carousel index as Server-Sent Events.
// The rotation lives exactly as long as the client connection.
func (s *Server) HeroStreamHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Hero Stream")

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, &logMessageBuilder, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	start, _ := strconv.Atoi(r.URL.Query().Get("slide"))
	sl := slider.Load(ctx, s.catalog, s.opts.DefaultHeroImage)
	sl.Show(start)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "data: %d\n\n", sl.Active())
	flusher.Flush()

	updates := make(chan int, 1)
	rotation := sl.Start(s.opts.SlideInterval, func(idx int) {
		select {
		case updates <- idx:
		default:
		}
	})
	defer rotation.Stop()

	sent := streamIndexes(ctx, w, flusher, updates)
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Client disconnected after %d updates", sent))
}

func streamIndexes(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, updates <-chan int) int {
	sent := 0
	for {
		select {
		case <-ctx.Done():
			return sent
		case idx := <-updates:
			if _, err := fmt.Fprintf(w, "data: %d\n\n", idx); err != nil {
				return sent
			}
			flusher.Flush()
			sent++
		}
	}
}
