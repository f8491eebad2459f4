package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// UserRepository exposes typed DB operations required by auth flows.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create inserts a registered faculty account with an empty profile.
// An empty passwordHash stores NULL (OAuth-only accounts).
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (User, error) {
	user := User{ID: uuid.New(), Name: name, Email: email, PasswordHash: passwordHash}

	var hashArg *string
	if passwordHash != "" {
		hashArg = &passwordHash
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return User{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		user.ID, name, email, hashArg,
	).Scan(&user.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO faculty_profiles (id, user_id) VALUES ($1, $2)`,
		uuid.New(), user.ID,
	); err != nil {
		return User{}, fmt.Errorf("insert profile: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return User{}, fmt.Errorf("commit: %w", err)
	}
	return user, nil
}

// GetByEmail fetches a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (User, error) {
	var u User
	var hash *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if hash != nil {
		u.PasswordHash = *hash
	}
	return u, nil
}

// GetByID fetches a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (User, error) {
	var u User
	var hash *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Name, &u.Email, &hash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	if hash != nil {
		u.PasswordHash = *hash
	}
	return u, nil
}

// GetProfile fetches the faculty profile for a user.
func (r *UserRepository) GetProfile(ctx context.Context, userID uuid.UUID) (FacultyProfile, error) {
	var p FacultyProfile
	var department, designation *string
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, department, designation, updated_at
		 FROM faculty_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.ID, &p.UserID, &department, &designation, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return FacultyProfile{}, ErrNotFound
	}
	if err != nil {
		return FacultyProfile{}, err
	}
	if department != nil {
		p.Department = *department
	}
	if designation != nil {
		p.Designation = *designation
	}
	return p, nil
}

// UpsertProfile creates or updates the department/designation details.
func (r *UserRepository) UpsertProfile(ctx context.Context, userID uuid.UUID, department, designation string) (FacultyProfile, error) {
	var p FacultyProfile
	err := r.pool.QueryRow(ctx,
		`INSERT INTO faculty_profiles (id, user_id, department, designation)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (user_id) DO UPDATE
		 SET department = EXCLUDED.department,
		     designation = EXCLUDED.designation,
		     updated_at = now()
		 RETURNING id, user_id, updated_at`,
		uuid.New(), userID, department, designation,
	).Scan(&p.ID, &p.UserID, &p.UpdatedAt)
	if err != nil {
		return FacultyProfile{}, err
	}
	p.Department = department
	p.Designation = designation
	return p, nil
}
