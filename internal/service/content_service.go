package service

import (
	"context"
	"encoding/json"
	"fmt"
	"go-recruit-app/internal/cache"
	"go-recruit-app/internal/content"
	"go-recruit-app/internal/data"
	"time"
)

// contentCacheTTL bounds how stale a rendered page can be after an edit made
// directly in the database. Admin saves invalidate explicitly.
const contentCacheTTL = 5 * time.Minute

// ContentRepository defines the interface for database operations on
// persisted page content.
type ContentRepository interface {
	GetByPage(ctx context.Context, pageName string) (*data.PageContent, error)
	Upsert(ctx context.Context, pageName string, content []byte) error
}

// ContentServicer defines the interface for fetching and saving page content.
type ContentServicer interface {
	PageContent(ctx context.Context, page string) (content.Node, error)
	SaveContent(ctx context.Context, page string, doc content.Node) error
}

// ContentService reconciles persisted page content against the defaults
// table and serves the merged tree views render and the editor mutates.
type ContentService struct {
	repo  ContentRepository
	cache *cache.Cache
}

// NewContentService creates a new ContentService.
func NewContentService(repo ContentRepository, c *cache.Cache) *ContentService {
	return &ContentService{repo: repo, cache: c}
}

func contentCacheKey(page string) string {
	return "content:" + page
}

// PageContent returns the complete, displayable content tree for a page:
// the persisted document merged over the hand-authored defaults. A missing
// row, a malformed document, or a stale empty section all degrade to the
// defaults rather than failing the page.
func (s *ContentService) PageContent(ctx context.Context, page string) (content.Node, error) {
	if !content.Known(page) {
		return nil, fmt.Errorf("unknown content page '%s'", page)
	}

	if cached, err := s.cache.Get(contentCacheKey(page)); err == nil && cached != nil {
		var node content.Node
		if err := json.Unmarshal(cached, &node); err == nil {
			return node, nil
		}
		// An undecodable cache entry is dropped and recomputed.
		_ = s.cache.Delete(contentCacheKey(page))
	}

	row, err := s.repo.GetByPage(ctx, page)
	if err != nil {
		return nil, err
	}

	var incoming content.Node
	if row != nil {
		if err := json.Unmarshal(row.Content, &incoming); err != nil {
			// A malformed persisted document degrades to the defaults.
			incoming = nil
		}
	}

	merged := content.Merge(content.Defaults(page), incoming)

	if buf, err := json.Marshal(merged); err == nil {
		_ = s.cache.Set(contentCacheKey(page), buf, contentCacheTTL)
	}
	return merged, nil
}

// SaveContent replaces the persisted document for a page with the full
// in-memory tree. Saves are whole-document; the last full save wins.
func (s *ContentService) SaveContent(ctx context.Context, page string, doc content.Node) error {
	if !content.Known(page) {
		return fmt.Errorf("unknown content page '%s'", page)
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode content for page '%s': %w", page, err)
	}
	if err := s.repo.Upsert(ctx, page, buf); err != nil {
		return err
	}
	_ = s.cache.Delete(contentCacheKey(page))
	return nil
}
