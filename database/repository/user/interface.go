package userRepo

import (
	"turnia/models"

	"go.mongodb.org/mongo-driver/bson"
)

// UserRepository defines methods for client account data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address, or nil if absent.
	GetByEmail(email string) (*models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// Delete removes a user record by its ID.
	Delete(id string) error
	// GetByIDWithProjection retrieves a user by its unique ID with a projection.
	GetByIDWithProjection(id string, projection bson.M) (*models.User, error)
	// UpdateTokenHash stores the hash of the currently issued bearer token.
	UpdateTokenHash(id, tokenHash string) error
	// UpdateFCMToken stores the device push token.
	UpdateFCMToken(id, fcmToken string) error
}
