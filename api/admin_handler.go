package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/glory-storefront/admin"
	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/utils"
	"github.com/raushankrgupta/glory-storefront/views"
)

// AdminHandler renders the admin region for the caller's current session
func (s *Server) AdminHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Admin")

	s.writeAdminPage(w, r, &logMessageBuilder, "", http.StatusOK)
}

func (s *Server) writeAdminPage(w http.ResponseWriter, r *http.Request, logger *strings.Builder, notice string, status int) {
	sess := auth.SessionFrom(r.Context())
	utils.AddToLogMessage(logger, fmt.Sprintf("Admin console state: %s", admin.StateFor(sess)))

	page := s.newPage(r, "Admin", views.AdminRegion)
	region, err := s.console.Render(sess, notice)
	if err != nil {
		utils.AddToLogMessage(logger, fmt.Sprintf("Error rendering admin region: %v", err))
		region = views.Message("Error loading admin console.")
	}
	page.Set(views.AdminRegion, region)
	writePage(w, logger, page, status)
}

// UploadProductHandler handles the product upload form
func (s *Server) UploadProductHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Upload Product")

	if !s.parseUpload(w, r, &logMessageBuilder) {
		return
	}
	image, closeFile, err := formFile(r, "image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid image file", http.StatusBadRequest)
		return
	}
	defer closeFile()

	product, err := s.console.UploadProduct(r.Context(), admin.ProductForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Price:       r.FormValue("price"),
		Image:       image,
	})
	s.finishUpload(w, r, &logMessageBuilder, "product", product, err)
}

// UploadVideoHandler handles the video upload form
func (s *Server) UploadVideoHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Upload Video")

	if !s.parseUpload(w, r, &logMessageBuilder) {
		return
	}
	file, closeFile, err := formFile(r, "file")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid video file", http.StatusBadRequest)
		return
	}
	defer closeFile()

	video, err := s.console.UploadVideo(r.Context(), admin.VideoForm{
		Title: r.FormValue("title"),
		Embed: r.FormValue("embed"),
		File:  file,
	})
	s.finishUpload(w, r, &logMessageBuilder, "video", video, err)
}

// UploadModelHandler handles the model upload form
func (s *Server) UploadModelHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Upload Model")

	if !s.parseUpload(w, r, &logMessageBuilder) {
		return
	}
	image, closeFile, err := formFile(r, "image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid image file", http.StatusBadRequest)
		return
	}
	defer closeFile()

	vm, err := s.console.UploadModel(r.Context(), admin.ModelForm{
		Category: r.FormValue("category"),
		Model:    r.FormValue("model"),
		Year:     r.FormValue("year"),
		Specs:    r.FormValue("specs"),
		Image:    image,
	})
	s.finishUpload(w, r, &logMessageBuilder, "model", vm, err)
}

// UploadHomepageImageHandler handles the homepage image upload form
func (s *Server) UploadHomepageImageHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Upload Homepage Image")

	if !s.parseUpload(w, r, &logMessageBuilder) {
		return
	}
	image, closeFile, err := formFile(r, "image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid image file", http.StatusBadRequest)
		return
	}
	defer closeFile()

	img, err := s.console.UploadHomepageImage(r.Context(), admin.HomepageImageForm{
		Order: r.FormValue("order"),
		Image: image,
	})
	s.finishUpload(w, r, &logMessageBuilder, "homepage image", img, err)
}

// parseUpload rejects non-admins before the body is read, then parses the
// multipart form within the configured size limit.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request, logger *strings.Builder) bool {
	if admin.StateFor(auth.SessionFrom(r.Context())) != admin.Authorized {
		s.respondUploadError(w, r, logger, "upload", admin.ErrForbidden)
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.RespondError(w, logger, fmt.Sprintf("Upload exceeds %d bytes", tooLarge.Limit), http.StatusRequestEntityTooLarge)
			return false
		}
		utils.AddToLogMessage(logger, fmt.Sprintf("Error parsing form: %v", err))
		utils.RespondError(w, logger, "Invalid form data", http.StatusBadRequest)
		return false
	}
	return true
}

// formFile returns nil when no file was selected.
func formFile(r *http.Request, field string) (*admin.File, func(), error) {
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, func() {}, nil
	}
	if err != nil {
		return nil, func() {}, err
	}
	file := &admin.File{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        f,
	}
	return file, func() { f.Close() }, nil
}

func (s *Server) finishUpload(w http.ResponseWriter, r *http.Request, logger *strings.Builder, thing string, record interface{}, err error) {
	if err != nil {
		s.respondUploadError(w, r, logger, thing, err)
		return
	}

	notice := fmt.Sprintf("%s uploaded.", capitalize(thing))
	utils.AddToLogMessage(logger, notice)
	if utils.WantsHTML(r) {
		s.writeAdminPage(w, r, logger, notice, http.StatusCreated)
		return
	}
	body := map[string]interface{}{"message": notice}
	body[thingKey(thing)] = record
	utils.RespondJSON(w, http.StatusCreated, body)
}

func (s *Server) respondUploadError(w http.ResponseWriter, r *http.Request, logger *strings.Builder, thing string, err error) {
	status := http.StatusInternalServerError
	message := fmt.Sprintf("Error uploading %s.", thing)

	var ve *admin.ValidationError
	switch {
	case errors.As(err, &ve):
		status = http.StatusBadRequest
		message = ve.Error()
	case errors.Is(err, admin.ErrForbidden):
		status = http.StatusForbidden
		message = "Not authorized"
	default:
		utils.AddToLogMessage(logger, err.Error())
	}

	if utils.WantsHTML(r) {
		utils.AddToLogMessage(logger, message)
		s.writeAdminPage(w, r, logger, message, status)
		return
	}
	utils.RespondError(w, logger, message, status)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func thingKey(thing string) string {
	return strings.ReplaceAll(thing, " ", "_")
}
