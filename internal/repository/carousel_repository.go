package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CarouselRepository stores homepage banners.
type CarouselRepository struct {
	pool *pgxpool.Pool
}

// NewCarouselRepository creates a new CarouselRepository.
func NewCarouselRepository(pool *pgxpool.Pool) *CarouselRepository {
	return &CarouselRepository{pool: pool}
}

// List returns banners in display order.
func (r *CarouselRepository) List(ctx context.Context) ([]model.CarouselImage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, url, position, created_at FROM carousel_images ORDER BY position, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list carousel: %w", err)
	}
	defer rows.Close()

	images := []model.CarouselImage{}
	for rows.Next() {
		var img model.CarouselImage
		if err := rows.Scan(&img.ID, &img.URL, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan carousel image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// Create inserts a banner.
func (r *CarouselRepository) Create(ctx context.Context, img *model.CarouselImage) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO carousel_images (url, position) VALUES ($1, $2) RETURNING id, created_at`,
		img.URL, img.Position,
	).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert carousel image: %w", err)
	}
	return nil
}

// Delete removes a banner.
func (r *CarouselRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM carousel_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete carousel image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Reorder applies every position in one transaction. An unknown id rolls
// the whole batch back with ErrNotFound.
func (r *CarouselRepository) Reorder(ctx context.Context, order []model.CarouselPosition) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for _, p := range order {
			tag, err := tx.Exec(ctx, `UPDATE carousel_images SET position = $2 WHERE id = $1`, p.ID, p.Position)
			if err != nil {
				return fmt.Errorf("reorder carousel image: %w", err)
			}
			if tag.RowsAffected() == 0 {
				return ErrNotFound
			}
		}
		return nil
	})
}
