package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

const trainerColumns = `id, name, email, password_hash, role, specialization, experience, bio, phone_number, is_active, created_at, updated_at`

// TrainerRepository handles staff account data access.
type TrainerRepository struct {
	pool *pgxpool.Pool
}

// NewTrainerRepository creates a new TrainerRepository.
func NewTrainerRepository(pool *pgxpool.Pool) *TrainerRepository {
	return &TrainerRepository{pool: pool}
}

func scanTrainer(row interface{ Scan(...any) error }, t *model.Trainer) error {
	return row.Scan(&t.ID, &t.Name, &t.Email, &t.PasswordHash, &t.Role, &t.Specialization,
		&t.Experience, &t.Bio, &t.PhoneNumber, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
}

// GetByID retrieves a staff account by ID.
func (r *TrainerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Trainer, error) {
	t := &model.Trainer{}
	if err := scanTrainer(r.pool.QueryRow(ctx, `SELECT `+trainerColumns+` FROM trainers WHERE id = $1`, id), t); err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// GetByEmail retrieves a staff account by email.
func (r *TrainerRepository) GetByEmail(ctx context.Context, email string) (*model.Trainer, error) {
	t := &model.Trainer{}
	if err := scanTrainer(r.pool.QueryRow(ctx, `SELECT `+trainerColumns+` FROM trainers WHERE email = $1`, email), t); err != nil {
		return nil, notFound(err)
	}
	return t, nil
}

// ListActive retrieves active staff with the trainer role.
func (r *TrainerRepository) ListActive(ctx context.Context) ([]model.Trainer, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+trainerColumns+` FROM trainers
		 WHERE is_active AND role = $1
		 ORDER BY name`, model.StaffRoleTrainer)
	if err != nil {
		return nil, fmt.Errorf("list trainers: %w", err)
	}
	defer rows.Close()

	trainers := []model.Trainer{}
	for rows.Next() {
		var t model.Trainer
		if err := scanTrainer(rows, &t); err != nil {
			return nil, fmt.Errorf("scan trainer: %w", err)
		}
		trainers = append(trainers, t)
	}
	return trainers, rows.Err()
}

// Create inserts a new staff account.
func (r *TrainerRepository) Create(ctx context.Context, t *model.Trainer) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO trainers (name, email, password_hash, role, specialization, experience, bio, phone_number)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id, is_active, created_at, updated_at`,
		t.Name, t.Email, t.PasswordHash, t.Role, t.Specialization, t.Experience, t.Bio, t.PhoneNumber,
	).Scan(&t.ID, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert trainer: %w", err)
	}
	return nil
}

// ListAll retrieves every staff account, deactivated ones included.
func (r *TrainerRepository) ListAll(ctx context.Context) ([]model.Trainer, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+trainerColumns+` FROM trainers ORDER BY role, name`)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	defer rows.Close()

	staff := []model.Trainer{}
	for rows.Next() {
		var t model.Trainer
		if err := scanTrainer(rows, &t); err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		staff = append(staff, t)
	}
	return staff, rows.Err()
}

// Update writes every mutable column of a staff account.
func (r *TrainerRepository) Update(ctx context.Context, t *model.Trainer) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE trainers
		 SET name = $2, email = $3, password_hash = $4, role = $5, specialization = $6,
		     experience = $7, bio = $8, phone_number = $9, is_active = $10, updated_at = NOW()
		 WHERE id = $1
		 RETURNING updated_at`,
		t.ID, t.Name, t.Email, t.PasswordHash, t.Role, t.Specialization,
		t.Experience, t.Bio, t.PhoneNumber, t.IsActive,
	).Scan(&t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateEmail
		}
		return notFound(err)
	}
	return nil
}

// Deactivate soft-deletes a staff account. Classes keep their trainer_id.
func (r *TrainerRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE trainers SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate trainer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
