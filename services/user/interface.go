package user

import (
	userRepo "turnia/database/repository/user"
	"turnia/models"
)

// UserService manages client accounts.
type UserService interface {
	Register(reg models.UserRegistration) (*models.AuthResponse, error)
	Authenticate(creds models.Credentials) (*models.AuthResponse, error)
	GetUserByID(userID string) (*models.User, error)
	UpdateUser(user models.User) (*models.User, error)
	DeleteUser(userID string) error
	RevokeAuthToken(userID string) error
	UpdateFCMToken(userID, fcmToken string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
