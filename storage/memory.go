package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/raushankrgupta/glory-storefront/utils"
)

// Object is a stored blob held by Memory.
type Object struct {
	Data        []byte
	ContentType string
}

// Memory keeps objects in process. It serves them over HTTP, so mounting it
// at BaseURL makes the returned URLs resolvable.
type Memory struct {
	BaseURL string

	mu      sync.Mutex
	objects map[string]Object
	// Puts and Deletes count calls, including failed ones.
	Puts    int
	Deletes int
	// PutErr and DeleteErr, when set, are returned instead of storing.
	PutErr    error
	DeleteErr error
}

func NewMemory(baseURL string) *Memory {
	return &Memory{BaseURL: baseURL, objects: make(map[string]Object)}
}

func (m *Memory) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Puts++
	if m.PutErr != nil {
		return "", m.PutErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return "", fmt.Errorf("failed to read upload body: %w", err)
	}
	m.objects[key] = Object{Data: buf.Bytes(), ContentType: contentType}
	return m.BaseURL + "/" + utils.EscapeObjectKey(key), nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deletes++
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.objects, key)
	return nil
}

// Get returns a stored object by key.
func (m *Memory) Get(key string) (Object, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[key]
	return obj, ok
}

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// ServeHTTP serves the object named by the request path, relative to where
// the handler is mounted.
func (m *Memory) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	obj, ok := m.Get(strings.TrimPrefix(r.URL.Path, "/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	w.Write(obj.Data)
}
