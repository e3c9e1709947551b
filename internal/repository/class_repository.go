package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ClassRepository handles class reads and scheduling.
type ClassRepository struct {
	pool *pgxpool.Pool
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(pool *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{pool: pool}
}

// GetByID retrieves a class with its trainer name.
func (r *ClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Class, error) {
	c := &model.Class{}
	err := scanClass(r.pool.QueryRow(ctx,
		`SELECT `+classColumns+`, t.name
		 FROM classes c
		 JOIN trainers t ON t.id = c.trainer_id
		 WHERE c.id = $1`, id,
	), c, &c.TrainerName)
	if err != nil {
		return nil, notFound(err)
	}
	return c, nil
}

// List retrieves the classes of active trainers ordered by date then start time.
func (r *ClassRepository) List(ctx context.Context) ([]model.Class, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+classColumns+`, t.name
		 FROM classes c
		 JOIN trainers t ON t.id = c.trainer_id
		 WHERE t.is_active
		 ORDER BY c.date ASC, c.start_time ASC`)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	classes := []model.Class{}
	for rows.Next() {
		var c model.Class
		if err := scanClass(rows, &c, &c.TrainerName); err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}

// Create inserts a new class with every slot available.
func (r *ClassRepository) Create(ctx context.Context, c *model.Class) error {
	c.AvailableSlots = c.Capacity
	err := r.pool.QueryRow(ctx,
		`INSERT INTO classes (name, category, date, start_time, end_time, capacity, available_slots, trainer_id)
		 VALUES ($1, $2, $3, $4::text::time, $5::text::time, $6, $7, $8)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Category, c.Date, c.StartTime, c.EndTime, c.Capacity, c.AvailableSlots, c.TrainerID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert class: %w", err)
	}
	return nil
}
