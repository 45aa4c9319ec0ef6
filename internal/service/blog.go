package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/repository"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxSlugAttempts = 50

type blogService struct {
	blogRepo repository.BlogRepository
}

func NewBlogService(blogRepo repository.BlogRepository) BlogService {
	return &blogService{blogRepo: blogRepo}
}

// Slugify folds a title into a lowercase ASCII slug, e.g. "Sewa Motor di Jogjá!" -> "sewa-motor-di-jogja"
func Slugify(title string) string {
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, title)
	if err != nil {
		folded = title
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// uniqueSlug returns base, or base-2, base-3 ... the first one not used by another post
func (s *blogService) uniqueSlug(ctx context.Context, base string, selfID int32) (string, error) {
	if base == "" {
		base = "post"
	}
	candidate := base
	for i := 2; i <= maxSlugAttempts+1; i++ {
		existing, err := s.blogRepo.GetBySlug(ctx, candidate)
		if errors.Is(err, repository.ErrNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		if existing.ID == selfID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", invalid("slug", "too many posts share the slug %q", base)
}

func validateBlog(blog *domain.Blog) error {
	blog.Title = strings.TrimSpace(blog.Title)
	if blog.Title == "" {
		return invalid("title", "is required")
	}
	if strings.TrimSpace(blog.Content) == "" {
		return invalid("content", "is required")
	}
	return nil
}

func (s *blogService) CreateBlog(ctx context.Context, authorID int32, blog *domain.Blog) error {
	if err := validateBlog(blog); err != nil {
		return err
	}
	base := Slugify(blog.Slug)
	if base == "" {
		base = Slugify(blog.Title)
	}
	slug, err := s.uniqueSlug(ctx, base, 0)
	if err != nil {
		return err
	}
	blog.Slug = slug
	blog.AuthorID = authorID
	return s.blogRepo.Create(ctx, blog)
}

func (s *blogService) GetBlog(ctx context.Context, id int32) (*domain.Blog, error) {
	return s.blogRepo.GetByID(ctx, id)
}

func (s *blogService) GetBySlug(ctx context.Context, slug string, publishedOnly bool) (*domain.Blog, error) {
	blog, err := s.blogRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if publishedOnly && !blog.Published {
		return nil, repository.ErrNotFound
	}
	return blog, nil
}

func (s *blogService) UpdateBlog(ctx context.Context, blog *domain.Blog) error {
	if err := validateBlog(blog); err != nil {
		return err
	}
	current, err := s.blogRepo.GetByID(ctx, blog.ID)
	if err != nil {
		return err
	}

	base := Slugify(blog.Slug)
	if base == "" {
		base = current.Slug
	}
	slug, err := s.uniqueSlug(ctx, base, blog.ID)
	if err != nil {
		return err
	}
	blog.Slug = slug
	blog.AuthorID = current.AuthorID
	return s.blogRepo.Update(ctx, blog)
}

func (s *blogService) DeleteBlog(ctx context.Context, id int32) error {
	return s.blogRepo.Delete(ctx, id)
}

func (s *blogService) ListBlogs(ctx context.Context, publishedOnly bool, page, pageSize int32) ([]domain.Blog, int32, error) {
	return s.blogRepo.List(ctx, publishedOnly, page, pageSize)
}
