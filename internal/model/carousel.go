package model

import (
	"time"

	"github.com/google/uuid"
)

// CarouselImage is a homepage banner. Lower positions are shown first.
type CarouselImage struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// AddCarouselImageRequest adds a banner by its hosted URL.
type AddCarouselImageRequest struct {
	URL      string `json:"url" binding:"required,max=2048,url,startswith=http"`
	Position int    `json:"position" binding:"min=0"`
}

// CarouselPosition moves one banner.
type CarouselPosition struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Position int       `json:"position" binding:"min=0"`
}

// ReorderCarouselRequest applies every move at once.
type ReorderCarouselRequest struct {
	Order []CarouselPosition `json:"order" binding:"required,min=1,dive"`
}
