// Package content stores the editable copy of the static CMS pages and turns
// it into fully populated page views.
package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"cibnlibrary/models"
)

// ErrNotFound is returned when a page has no stored content.
var ErrNotFound = errors.New("page content not found")

// Store is the capability the pages depend on: get and save content by page key.
type Store interface {
	Page(ctx context.Context, key models.PageKey) (*models.PageContent, error)
	Pages(ctx context.Context) (models.CMSPages, error)
	SavePage(ctx context.Context, key models.PageKey, page models.PageContent) error
}

// MemoryStore keeps content in process.
type MemoryStore struct {
	mu    sync.RWMutex
	pages models.CMSPages
}

// NewMemoryStore creates a store seeded with pages (may be nil).
func NewMemoryStore(pages models.CMSPages) *MemoryStore {
	s := &MemoryStore{pages: make(models.CMSPages)}
	for k, v := range pages {
		s.pages[k] = clonePage(v)
	}
	return s
}

func (s *MemoryStore) Page(_ context.Context, key models.PageKey) (*models.PageContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	page, ok := s.pages[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := clonePage(page)
	return &out, nil
}

func (s *MemoryStore) Pages(_ context.Context) (models.CMSPages, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(models.CMSPages, len(s.pages))
	for k, v := range s.pages {
		out[k] = clonePage(v)
	}
	return out, nil
}

func (s *MemoryStore) SavePage(_ context.Context, key models.PageKey, page models.PageContent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[key] = clonePage(page)
	return nil
}

func clonePage(p models.PageContent) models.PageContent {
	if p.Items != nil {
		p.Items = append([]models.QAItem(nil), p.Items...)
	}
	return p
}

// ParseBlob decodes a cached CMS document such as
// {"faqs": {"title": "...", "items": [...]}, "terms": {...}}.
// Unknown keys are ignored. Decoding is per field: a page that is not an
// object is skipped, a field of the wrong type is left empty, and an item that
// is not an object becomes an untitled entry. One malformed value never hides
// the rest of the content.
func ParseBlob(data []byte) (models.CMSPages, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode cms blob: %w", err)
	}

	pages := make(models.CMSPages)
	for _, key := range models.PageKeys {
		value, ok := raw[string(key)]
		if !ok {
			continue
		}
		if page, ok := parsePage(value); ok {
			pages[key] = page
		}
	}
	return pages, nil
}

func parsePage(raw json.RawMessage) (models.PageContent, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return models.PageContent{}, false
	}

	page := models.PageContent{
		HeroImage: textField(fields["heroImage"]),
		Title:     textField(fields["title"]),
		Intro:     textField(fields["intro"]),
		BodyHTML:  textField(fields["bodyHtml"]),
	}
	if updated := textField(fields["updatedAt"]); updated != "" {
		if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			page.UpdatedAt = t
		}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(fields["items"], &items); err == nil {
		for _, item := range items {
			if string(bytes.TrimSpace(item)) == "null" {
				continue
			}
			var itemFields map[string]json.RawMessage
			_ = json.Unmarshal(item, &itemFields)
			page.Items = append(page.Items, models.QAItem{
				Q:     textField(itemFields["q"]),
				AHTML: textField(itemFields["aHtml"]),
			})
		}
	}
	return page, true
}

// textField reads a scalar as display text. Strings pass through, numbers and
// true are printed, anything else is empty.
func textField(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't':
		return "true"
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		f, err := strconv.ParseFloat(string(raw), 64)
		if err != nil || f == 0 {
			return ""
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	default:
		return ""
	}
}
