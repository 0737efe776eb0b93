package professionalRepo

import (
	"turnia/models"

	"go.mongodb.org/mongo-driver/bson"
)

// ProfessionalRepository defines methods for professional account data access.
type ProfessionalRepository interface {
	// GetByID retrieves a professional by its unique ID.
	GetByID(id string) (*models.Professional, error)
	// GetByEmail retrieves a professional by email, or nil if absent.
	GetByEmail(email string) (*models.Professional, error)
	// GetAll lists professionals, optionally filtered by specialty.
	GetAll(specialty string) ([]models.Professional, error)
	// Create inserts a new professional record.
	Create(p *models.Professional) error
	// Update modifies an existing professional record.
	Update(p *models.Professional) error
	// Delete removes a professional record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a professional by ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.Professional, error)
	// UpdateTokenHash stores the hash of the currently issued bearer token.
	UpdateTokenHash(id, tokenHash string) error
	// UpdateFCMToken stores the device push token.
	UpdateFCMToken(id, fcmToken string) error
	// UpdateAvatar stores the Cloudinary public ID of the profile image.
	UpdateAvatar(id, avatarID string) error
}
