package restaurants

import (
	"time"

	"github.com/google/uuid"

	"github.com/olivercruz/dishpatch-backend/pkg/db/models"
)

// RestaurantDTO is the read model exposed to other domains and the API.
type RestaurantDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toDTO(record *models.Restaurant) *RestaurantDTO {
	return &RestaurantDTO{
		ID:          record.ID,
		Name:        record.Name,
		Description: record.Description,
		ImageURL:    record.ImageURL,
		IsActive:    record.IsActive,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}
