package professional

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"turnia/models"
	"turnia/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a professional account and issues a bearer token.
func (s *DefaultProfessionalService) Register(reg models.ProfessionalRegistration) (*models.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(reg.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check existing professional", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", reg.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	services := reg.Services
	for i := range services {
		if services[i].ID == "" {
			services[i].ID = uuid.New().String()
		}
	}

	now := time.Now()
	p := &models.Professional{
		ID:           uuid.New().String(),
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		Specialty:    reg.Specialty,
		Bio:          reg.Bio,
		Services:     services,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(p); err != nil {
		return nil, fmt.Errorf("failed to create professional: %w", err)
	}

	return s.issueToken(p)
}

// Authenticate verifies credentials and issues a fresh bearer token.
func (s *DefaultProfessionalService) Authenticate(creds models.Credentials) (*models.AuthResponse, error) {
	p, err := s.Repo.GetByEmail(creds.Email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch professional", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if p == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(p)
}

func (s *DefaultProfessionalService) issueToken(p *models.Professional) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(p.ID, utils.RoleProfessional, p.Email, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(p.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	if authCache := utils.GetAuthCacheClient(); authCache != nil {
		_ = authCache.Set(context.Background(), utils.AuthCachePrefix+p.ID, tokenHash, utils.AuthCacheTTL).Err()
	}

	return &models.AuthResponse{
		Token: token,
		ID:    p.ID,
		Name:  p.Name,
		Email: p.Email,
		Role:  utils.RoleProfessional,
	}, nil
}

// GetProfessionalByID fetches a professional account.
func (s *DefaultProfessionalService) GetProfessionalByID(id string) (*models.Professional, error) {
	return s.Repo.GetByID(id)
}

// listingCacheTTL bounds how stale the public catalog may get; the listing
// is the marketplace landing query, so it goes through the generic cache.
const listingCacheTTL = 5 * time.Minute

// ListProfessionals lists professionals, optionally filtered by specialty.
func (s *DefaultProfessionalService) ListProfessionals(specialty string) ([]models.Professional, error) {
	cacheKey := "professionals:" + specialty
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if cache := utils.GetCacheClient(); cache != nil {
		if data, err := cache.Get(ctx, cacheKey).Result(); err == nil {
			var cached []models.Professional
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return cached, nil
			}
		}
	}

	pros, err := s.Repo.GetAll(specialty)
	if err != nil {
		return nil, err
	}

	if cache := utils.GetCacheClient(); cache != nil {
		if data, err := json.Marshal(pros); err == nil {
			if err := cache.Set(ctx, cacheKey, data, listingCacheTTL).Err(); err != nil {
				utils.GetLogger().Debug("failed to cache professional listing", zap.Error(err))
			}
		}
	}
	return pros, nil
}

// UpdateProfessional persists profile edits.
func (s *DefaultProfessionalService) UpdateProfessional(p models.Professional) (*models.Professional, error) {
	current, err := s.Repo.GetByID(p.ID)
	if err != nil {
		return nil, fmt.Errorf("professional not found: %w", err)
	}

	current.Name = p.Name
	current.Phone = p.Phone
	current.Specialty = p.Specialty
	current.Bio = p.Bio
	current.UpdatedAt = time.Now()

	if err := s.Repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteProfessional removes the account and its cached credentials.
func (s *DefaultProfessionalService) DeleteProfessional(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	if authCache := utils.GetAuthCacheClient(); authCache != nil {
		_ = authCache.Del(context.Background(), utils.AuthCachePrefix+id).Err()
	}
	return nil
}

// RevokeAuthToken invalidates the current bearer token.
func (s *DefaultProfessionalService) RevokeAuthToken(id string) error {
	if err := s.Repo.UpdateTokenHash(id, ""); err != nil {
		return err
	}
	if authCache := utils.GetAuthCacheClient(); authCache != nil {
		_ = authCache.Del(context.Background(), utils.AuthCachePrefix+id).Err()
	}
	return nil
}

// UpdateFCMToken stores the device push token.
func (s *DefaultProfessionalService) UpdateFCMToken(id, fcmToken string) error {
	return s.Repo.UpdateFCMToken(id, fcmToken)
}

// AddService appends a catalog entry.
func (s *DefaultProfessionalService) AddService(professionalID string, svc models.ServiceOffering) (*models.Professional, error) {
	current, err := s.Repo.GetByID(professionalID)
	if err != nil {
		return nil, fmt.Errorf("professional not found: %w", err)
	}

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	current.Services = append(current.Services, svc)
	current.UpdatedAt = time.Now()

	if err := s.Repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

// RemoveService deletes a catalog entry by ID.
func (s *DefaultProfessionalService) RemoveService(professionalID, serviceID string) (*models.Professional, error) {
	current, err := s.Repo.GetByID(professionalID)
	if err != nil {
		return nil, fmt.Errorf("professional not found: %w", err)
	}

	kept := current.Services[:0]
	found := false
	for _, svc := range current.Services {
		if svc.ID == serviceID {
			found = true
			continue
		}
		kept = append(kept, svc)
	}
	if !found {
		return nil, fmt.Errorf("service %s not found", serviceID)
	}
	current.Services = kept
	current.UpdatedAt = time.Now()

	if err := s.Repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

// UploadAvatar stores the profile image and records its public ID.
func (s *DefaultProfessionalService) UploadAvatar(professionalID, localFilePath string) (string, error) {
	if s.Storage == nil {
		return "", fmt.Errorf("media storage is not configured")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	publicID, err := s.Storage.UploadFile(ctx, localFilePath, "avatars")
	if err != nil {
		return "", fmt.Errorf("avatar upload failed: %w", err)
	}
	if err := s.Repo.UpdateAvatar(professionalID, publicID); err != nil {
		return "", err
	}
	return publicID, nil
}
