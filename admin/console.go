// Package admin implements the admin console: the access gate and the four
// upload operations.
package admin

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/storage"
	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/views"
)

// State is what the console region shows.
type State int

const (
	Denied State = iota
	Authorized
)

func (s State) String() string {
	if s == Authorized {
		return "authorized"
	}
	return "denied"
}

// StateFor is Authorized only for a signed-in admin session.
func StateFor(sess auth.Session) State {
	if sess.SignedIn() && sess.IsAdmin {
		return Authorized
	}
	return Denied
}

// ErrForbidden is returned by uploads attempted without admin rights.
var ErrForbidden = errors.New("administrator rights required")

// ValidationError reports input rejected before any network call.
type ValidationError struct {
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required field(s): "+strings.Join(e.Missing, ", "))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	return strings.Join(parts, "; ")
}

// IsValidation reports whether err is a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// File is an optional uploaded file.
type File struct {
	Name        string
	ContentType string
	Body        io.Reader
}

// Console owns the admin uploads. Inserts should go through a cache-aware
// CatalogStore so listings refresh after an upload.
type Console struct {
	catalog store.CatalogStore
	objects storage.ObjectStorage
	now     func() time.Time
}

func NewConsole(catalog store.CatalogStore, objects storage.ObjectStorage) *Console {
	return &Console{
		catalog: catalog,
		objects: objects,
		now:     time.Now,
	}
}

// SetClock replaces the clock used for object key timestamps.
func (c *Console) SetClock(now func() time.Time) {
	c.now = now
}

// Render returns the console region for sess. It is rebuilt on every call so
// a session that lost admin rights sees Denied on its next render.
func (c *Console) Render(sess auth.Session, notice string) (template.HTML, error) {
	if StateFor(sess) == Denied {
		return views.AdminDenied()
	}
	return views.AdminConsole(notice)
}

func requireAdmin(sess auth.Session) error {
	if StateFor(sess) != Authorized {
		return ErrForbidden
	}
	return nil
}

func missing(fields ...[2]string) []string {
	var out []string
	for _, f := range fields {
		if f[1] == "" {
			out = append(out, f[0])
		}
	}
	return out
}

func wrap(action string, err error) error {
	return fmt.Errorf("upload %s: %w", action, err)
}
