package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentalmotor-backend/internal/domain"
	"rentalmotor-backend/internal/repository"
)

type blogRepository struct {
	db *sql.DB
}

func NewBlogRepository(db *sql.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

const blogColumns = `id, title, slug, content, cover_url, published, author_id, created_on, updated_on`

func (r *blogRepository) Create(ctx context.Context, b *domain.Blog) error {
	query := `INSERT INTO blogs (title, slug, content, cover_url, published, author_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	return r.db.QueryRowContext(ctx, query, b.Title, b.Slug, b.Content, b.CoverURL, b.Published, b.AuthorID, now, now).Scan(&b.ID)
}

func (r *blogRepository) GetByID(ctx context.Context, id int32) (*domain.Blog, error) {
	b := &domain.Blog{}
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.CoverURL, &b.Published, &b.AuthorID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *blogRepository) GetBySlug(ctx context.Context, slug string) (*domain.Blog, error) {
	b := &domain.Blog{}
	query := `SELECT ` + blogColumns + ` FROM blogs WHERE slug = $1`
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.CoverURL, &b.Published, &b.AuthorID, &b.CreatedOn, &b.UpdatedOn)
	if err != nil {
		return nil, notFound(err)
	}
	return b, nil
}

func (r *blogRepository) Update(ctx context.Context, b *domain.Blog) error {
	query := `UPDATE blogs SET title=$1, slug=$2, content=$3, cover_url=$4, published=$5, updated_on=$6 WHERE id=$7`
	return expectOne(r.db.ExecContext(ctx, query, b.Title, b.Slug, b.Content, b.CoverURL, b.Published, time.Now(), b.ID))
}

func (r *blogRepository) Delete(ctx context.Context, id int32) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id))
}

func (r *blogRepository) List(ctx context.Context, publishedOnly bool, page, pageSize int32) ([]domain.Blog, int32, error) {
	where := ""
	if publishedOnly {
		where = " WHERE published = TRUE"
	}

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM blogs`+where).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + blogColumns + ` FROM blogs` + where + ` ORDER BY created_on DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var blogs []domain.Blog
	for rows.Next() {
		var b domain.Blog
		if err := rows.Scan(&b.ID, &b.Title, &b.Slug, &b.Content, &b.CoverURL, &b.Published, &b.AuthorID, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, 0, err
		}
		blogs = append(blogs, b)
	}
	return blogs, count, rows.Err()
}
