package content

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"cibnlibrary/models"
)

// SeedFromFile loads a CMS blob from path and saves each page the store does
// not have yet. Existing pages are left alone. It returns the number of pages written.
func SeedFromFile(ctx context.Context, store Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read cms seed: %w", err)
	}
	pages, err := ParseBlob(data)
	if err != nil {
		return 0, err
	}
	return Seed(ctx, store, pages)
}

// Seed saves every page in pages that is missing from store. Pages without
// an update time are stamped with the seeding time.
func Seed(ctx context.Context, store Store, pages models.CMSPages) (int, error) {
	now := time.Now().UTC()
	written := 0
	for _, key := range models.PageKeys {
		page, ok := pages[key]
		if !ok {
			continue
		}
		_, err := store.Page(ctx, key)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return written, fmt.Errorf("failed to check page %s: %w", key, err)
		}
		if page.UpdatedAt.IsZero() {
			page.UpdatedAt = now
		}
		if err := store.SavePage(ctx, key, page); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}
