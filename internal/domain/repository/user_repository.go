package repository

import (
	"blogboard/internal/common"
	"blogboard/internal/domain/model"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, id string) error
	ListWithPostCount(ctx context.Context) ([]model.UserSummary, error)
	GetProfile(ctx context.Context, id string) (*model.UserProfile, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, password)
	          VALUES ($1, $2, $3, $4)
	          RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.Email, user.HashedPassword).
		Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with email %s: %w", user.Email, common.ErrDuplicateEmail)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, name, email, password, created_at, last_login
	          FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email), "FindByEmail")
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, name, email, password, created_at, last_login
	          FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgUserRepository) scanUser(row *sql.Row, op string) (*model.User, error) {
	user := &model.User{}
	var lastLogin sql.NullTime
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.CreatedAt, &lastLogin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	if lastLogin.Valid {
		user.LastLogin = &lastLogin.Time
	}
	return user, nil
}

func (r *pgUserRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE users SET last_login = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("pgUserRepository.UpdateLastLogin: %w", err)
	}
	return nil
}

func (r *pgUserRepository) ListWithPostCount(ctx context.Context) ([]model.UserSummary, error) {
	query := `SELECT users.id, users.name, users.email, users.created_at, users.last_login,
	                 COUNT(posts.id) AS post_count
	          FROM users
	          LEFT JOIN posts ON users.id = posts.user_id
	          GROUP BY users.id, users.name, users.email, users.created_at, users.last_login
	          ORDER BY users.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListWithPostCount: %w", err)
	}
	defer rows.Close()

	summaries := []model.UserSummary{}
	for rows.Next() {
		var s model.UserSummary
		var lastLogin sql.NullTime
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.CreatedAt, &lastLogin, &s.PostCount); err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListWithPostCount scan: %w", err)
		}
		if lastLogin.Valid {
			s.LastLogin = &lastLogin.Time
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListWithPostCount rows: %w", err)
	}
	return summaries, nil
}

func (r *pgUserRepository) GetProfile(ctx context.Context, id string) (*model.UserProfile, error) {
	query := `SELECT users.id, users.name, users.email, users.created_at, users.last_login,
	                 COUNT(posts.id) AS total_posts, MAX(posts.created_at) AS last_post_date
	          FROM users
	          LEFT JOIN posts ON users.id = posts.user_id
	          WHERE users.id = $1
	          GROUP BY users.id, users.name, users.email, users.created_at, users.last_login`
	profile := &model.UserProfile{}
	var lastLogin, lastPost sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.Name, &profile.Email, &profile.CreatedAt, &lastLogin,
		&profile.TotalPosts, &lastPost,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.GetProfile: %w", err)
	}
	if lastLogin.Valid {
		profile.LastLogin = &lastLogin.Time
	}
	if lastPost.Valid {
		profile.LastPostDate = &lastPost.Time
	}
	return profile, nil
}
