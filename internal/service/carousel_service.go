package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/rs/zerolog"
)

// Carousel errors.
var (
	ErrCarouselImageNotFound = errors.New("carousel image not found")
	ErrDuplicateCarouselID   = errors.New("carousel order lists an image twice")
)

// CarouselStore is the banner storage. *repository.CarouselRepository
// implements it.
type CarouselStore interface {
	List(ctx context.Context) ([]model.CarouselImage, error)
	Create(ctx context.Context, img *model.CarouselImage) error
	Delete(ctx context.Context, id uuid.UUID) error
	Reorder(ctx context.Context, order []model.CarouselPosition) error
}

// CarouselService manages the homepage banners.
type CarouselService struct {
	images CarouselStore
	log    zerolog.Logger
}

// NewCarouselService creates a new CarouselService.
func NewCarouselService(images CarouselStore, log zerolog.Logger) *CarouselService {
	return &CarouselService{
		images: images,
		log:    log.With().Str("component", "carousel_service").Logger(),
	}
}

func (s *CarouselService) ListImages(ctx context.Context) ([]model.CarouselImage, error) {
	return s.images.List(ctx)
}

func (s *CarouselService) AddImage(ctx context.Context, req *model.AddCarouselImageRequest) (*model.CarouselImage, error) {
	img := &model.CarouselImage{URL: req.URL, Position: req.Position}
	if err := s.images.Create(ctx, img); err != nil {
		return nil, err
	}
	s.log.Info().Str("image_id", img.ID.String()).Int("position", img.Position).Msg("Carousel image added")
	return img, nil
}

func (s *CarouselService) DeleteImage(ctx context.Context, id uuid.UUID) error {
	if err := s.images.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarouselImageNotFound
		}
		return err
	}
	return nil
}

// ReorderImages moves every listed banner or none of them.
func (s *CarouselService) ReorderImages(ctx context.Context, order []model.CarouselPosition) error {
	seen := make(map[uuid.UUID]struct{}, len(order))
	for _, p := range order {
		if _, dup := seen[p.ID]; dup {
			return ErrDuplicateCarouselID
		}
		seen[p.ID] = struct{}{}
	}

	if err := s.images.Reorder(ctx, order); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarouselImageNotFound
		}
		return err
	}
	return nil
}
