package professional

import (
	professionalRepo "turnia/database/repository/professional"
	"turnia/models"
	"turnia/services/storage"
)

// ProfessionalService manages professional accounts and their catalogs.
type ProfessionalService interface {
	Register(reg models.ProfessionalRegistration) (*models.AuthResponse, error)
	Authenticate(creds models.Credentials) (*models.AuthResponse, error)
	GetProfessionalByID(id string) (*models.Professional, error)
	ListProfessionals(specialty string) ([]models.Professional, error)
	UpdateProfessional(p models.Professional) (*models.Professional, error)
	DeleteProfessional(id string) error
	RevokeAuthToken(id string) error
	UpdateFCMToken(id, fcmToken string) error

	// Catalog management.
	AddService(professionalID string, svc models.ServiceOffering) (*models.Professional, error)
	RemoveService(professionalID, serviceID string) (*models.Professional, error)

	// Avatar upload through the media storage backend.
	UploadAvatar(professionalID, localFilePath string) (string, error)
}

// DefaultProfessionalService is the production implementation.
type DefaultProfessionalService struct {
	Repo    professionalRepo.ProfessionalRepository
	Storage storage.StorageService
}
