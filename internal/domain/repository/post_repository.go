package repository

import (
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
)

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	FindByIDWithAuthor(ctx context.Context, id string) (*model.Post, error)
	ListWithAuthor(ctx context.Context) ([]model.Post, error)
	ListByUser(ctx context.Context, userID string) ([]model.Post, error)
	Update(ctx context.Context, id, title, slug, content string) error
	Delete(ctx context.Context, id string) (*model.Post, error)
	GetUserStats(ctx context.Context, userID string) (*model.UserStats, error)
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (id, user_id, title, slug, content)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, post.ID, post.UserID, post.Title, post.Slug, post.Content).
		Scan(&post.CreatedAt)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT id, user_id, title, slug, content, created_at, updated_at
	          FROM posts WHERE id = $1`
	post := &model.Post{}
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content, &post.CreatedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}
	return post, nil
}

func (r *pgPostRepository) FindByIDWithAuthor(ctx context.Context, id string) (*model.Post, error) {
	query := `SELECT posts.id, posts.user_id, posts.title, posts.slug, posts.content,
	                 posts.created_at, posts.updated_at, users.name AS author
	          FROM posts
	          JOIN users ON posts.user_id = users.id
	          WHERE posts.id = $1`
	post := &model.Post{}
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content,
		&post.CreatedAt, &updatedAt, &post.Author,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByIDWithAuthor: %w", err)
	}
	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}
	return post, nil
}

func (r *pgPostRepository) ListWithAuthor(ctx context.Context) ([]model.Post, error) {
	query := `SELECT posts.id, posts.user_id, posts.title, posts.slug, posts.content,
	                 posts.created_at, posts.updated_at, users.name AS author
	          FROM posts
	          JOIN users ON posts.user_id = users.id
	          ORDER BY posts.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListWithAuthor: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows, true)
}

func (r *pgPostRepository) ListByUser(ctx context.Context, userID string) ([]model.Post, error) {
	query := `SELECT id, user_id, title, slug, content, created_at, updated_at
	          FROM posts
	          WHERE user_id = $1
	          ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListByUser: %w", err)
	}
	defer rows.Close()
	return scanPosts(rows, false)
}

func scanPosts(rows *sql.Rows, withAuthor bool) ([]model.Post, error) {
	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		var updatedAt sql.NullTime
		dest := []interface{}{&p.ID, &p.UserID, &p.Title, &p.Slug, &p.Content, &p.CreatedAt, &updatedAt}
		if withAuthor {
			dest = append(dest, &p.Author)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("pgPostRepository scan: %w", err)
		}
		if updatedAt.Valid {
			p.UpdatedAt = &updatedAt.Time
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository rows: %w", err)
	}
	return posts, nil
}

func (r *pgPostRepository) Update(ctx context.Context, id, title, slug, content string) error {
	query := `UPDATE posts SET title = $1, slug = $2, content = $3, updated_at = NOW()
	          WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, title, slug, content, id)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPostRepository.Update rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) (*model.Post, error) {
	query := `DELETE FROM posts WHERE id = $1
	          RETURNING id, user_id, title, slug, content, created_at, updated_at`
	post := &model.Post{}
	var updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.UserID, &post.Title, &post.Slug, &post.Content, &post.CreatedAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	if updatedAt.Valid {
		post.UpdatedAt = &updatedAt.Time
	}
	return post, nil
}

func (r *pgPostRepository) GetUserStats(ctx context.Context, userID string) (*model.UserStats, error) {
	query := `SELECT COUNT(*) AS total_posts,
	                 COUNT(CASE WHEN created_at >= NOW() - INTERVAL '7 days' THEN 1 END) AS posts_this_week,
	                 COUNT(CASE WHEN created_at >= NOW() - INTERVAL '30 days' THEN 1 END) AS posts_this_month,
	                 MAX(created_at) AS last_post_date,
	                 MIN(created_at) AS first_post_date,
	                 AVG(LENGTH(content)) AS avg_content_length
	          FROM posts
	          WHERE user_id = $1`
	stats := &model.UserStats{UserID: userID}
	var lastPost, firstPost sql.NullTime
	var avgLength sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalPosts, &stats.PostsThisWeek, &stats.PostsThisMonth,
		&lastPost, &firstPost, &avgLength,
	)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.GetUserStats: %w", err)
	}
	if lastPost.Valid {
		stats.LastPostDate = &lastPost.Time
	}
	if firstPost.Valid {
		stats.FirstPostDate = &firstPost.Time
	}
	if avgLength.Valid {
		stats.AvgContentLength = int(math.Round(avgLength.Float64))
	}
	return stats, nil
}
