package user

import (
	"context"
	"fmt"
	"time"

	"turnia/models"
	"turnia/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a client account and issues a bearer token.
func (s *DefaultUserService) Register(reg models.UserRegistration) (*models.AuthResponse, error) {
	existing, err := s.Repo.GetByEmail(reg.Email)
	if err != nil {
		utils.GetLogger().Error("Register: failed to check existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, fmt.Errorf("an account with email %s already exists", reg.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	usr := &models.User{
		ID:           uuid.New().String(),
		Name:         reg.Name,
		Email:        reg.Email,
		Phone:        reg.Phone,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(usr); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueToken(usr)
}

// Authenticate verifies credentials and issues a fresh bearer token.
func (s *DefaultUserService) Authenticate(creds models.Credentials) (*models.AuthResponse, error) {
	usr, err := s.Repo.GetByEmail(creds.Email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if usr == nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	return s.issueToken(usr)
}

// issueToken signs a JWT, stores its hash, and primes the auth cache.
func (s *DefaultUserService) issueToken(usr *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(usr.ID, utils.RoleClient, usr.Email, utils.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.UpdateTokenHash(usr.ID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to store token hash: %w", err)
	}

	if authCache := utils.GetAuthCacheClient(); authCache != nil {
		_ = authCache.Set(context.Background(), utils.AuthCachePrefix+usr.ID, tokenHash, utils.AuthCacheTTL).Err()
	}

	return &models.AuthResponse{
		Token: token,
		ID:    usr.ID,
		Name:  usr.Name,
		Email: usr.Email,
		Role:  utils.RoleClient,
	}, nil
}

// GetUserByID fetches a client account.
func (s *DefaultUserService) GetUserByID(userID string) (*models.User, error) {
	return s.Repo.GetByID(userID)
}

// UpdateUser persists profile edits. Credentials-related fields are not
// editable through this path.
func (s *DefaultUserService) UpdateUser(user models.User) (*models.User, error) {
	current, err := s.Repo.GetByID(user.ID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}

	current.Name = user.Name
	current.Phone = user.Phone
	current.UpdatedAt = time.Now()

	if err := s.Repo.Update(current); err != nil {
		return nil, err
	}
	return current, nil
}

// DeleteUser removes the account and its cached credentials.
func (s *DefaultUserService) DeleteUser(userID string) error {
	if err := s.Repo.Delete(userID); err != nil {
		return err
	}
	if authCache := utils.GetAuthCacheClient(); authCache != nil {
		_ = authCache.Del(context.Background(), utils.AuthCachePrefix+userID).Err()
	}
	return nil
}

// RevokeAuthToken invalidates the current bearer token.
func (s *DefaultUserService) RevokeAuthToken(userID string) error {
	if err := s.Repo.UpdateTokenHash(userID, ""); err != nil {
		return err
	}
	if authCache := utils.GetAuthCacheClient(); authCache != nil {
		_ = authCache.Del(context.Background(), utils.AuthCachePrefix+userID).Err()
	}
	return nil
}

// UpdateFCMToken stores the device push token.
func (s *DefaultUserService) UpdateFCMToken(userID, fcmToken string) error {
	return s.Repo.UpdateFCMToken(userID, fcmToken)
}
