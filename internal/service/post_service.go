package service

import (
	"bytes"
	"context"
	"fmt"
	"go-recruit-app/internal/data"
	"html/template"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// PostRepository defines the interface for database operations on blog posts.
type PostRepository interface {
	ListPublished(ctx context.Context) ([]*data.Post, error)
	ListAll(ctx context.Context) ([]*data.Post, error)
	GetBySlug(ctx context.Context, slug string) (*data.Post, error)
	Create(ctx context.Context, post *data.Post) (int64, error)
	Update(ctx context.Context, post *data.Post) error
	Delete(ctx context.Context, id int64) error
}

// PostServicer defines the interface for interacting with blog posts.
type PostServicer interface {
	PublishedPosts(ctx context.Context) ([]*data.Post, error)
	AllPosts(ctx context.Context) ([]*data.Post, error)
	PostBySlug(ctx context.Context, slug string) (*data.Post, error)
	CreatePost(ctx context.Context, post *data.Post) (int64, error)
	UpdatePost(ctx context.Context, post *data.Post) error
	DeletePost(ctx context.Context, id int64) error
}

// PostService renders blog markdown to sanitized HTML.
type PostService struct {
	repo      PostRepository
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewPostService creates a new PostService.
func NewPostService(repo PostRepository) *PostService {
	return &PostService{
		repo:      repo,
		markdown:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// render converts the markdown body to sanitized HTML on the post itself.
func (s *PostService) render(post *data.Post) error {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Body), &buf); err != nil {
		return fmt.Errorf("failed to render post '%s': %w", post.Slug, err)
	}
	post.HTMLBody = template.HTML(s.sanitizer.SanitizeBytes(buf.Bytes()))
	return nil
}

// PublishedPosts returns published posts with rendered bodies, newest first.
func (s *PostService) PublishedPosts(ctx context.Context) ([]*data.Post, error) {
	posts, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if err := s.render(post); err != nil {
			return nil, err
		}
	}
	return posts, nil
}

// AllPosts returns every post for the admin view; bodies are not rendered.
func (s *PostService) AllPosts(ctx context.Context) ([]*data.Post, error) {
	return s.repo.ListAll(ctx)
}

// PostBySlug returns one rendered post, or nil when it does not exist.
func (s *PostService) PostBySlug(ctx context.Context, slug string) (*data.Post, error) {
	post, err := s.repo.GetBySlug(ctx, slug)
	if err != nil || post == nil {
		return post, err
	}
	if err := s.render(post); err != nil {
		return nil, err
	}
	return post, nil
}

// CreatePost inserts a post, deriving the slug from the title when absent.
func (s *PostService) CreatePost(ctx context.Context, post *data.Post) (int64, error) {
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	return s.repo.Create(ctx, post)
}

// UpdatePost updates an existing post.
func (s *PostService) UpdatePost(ctx context.Context, post *data.Post) error {
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	post.UpdatedAt = time.Now()
	return s.repo.Update(ctx, post)
}

// DeletePost removes a post.
func (s *PostService) DeletePost(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL-safe slug.
func Slugify(title string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}
