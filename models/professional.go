package models

import "time"

// ServiceOffering is one bookable entry in a professional's catalog.
type ServiceOffering struct {
	ID          string  `bson:"id" json:"id"`
	Description string  `bson:"description" json:"description"`
	Price       float64 `bson:"price" json:"price"`
	Currency    string  `bson:"currency" json:"currency"`
	Duration    int     `bson:"duration" json:"duration"` // minutes
}

// Professional represents the service-providing counterparty in a booking.
type Professional struct {
	ID           string            `bson:"id" json:"id"`
	Name         string            `bson:"name" json:"name"`
	Email        string            `bson:"email" json:"email"`
	Phone        string            `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialty    string            `bson:"specialty" json:"specialty"`
	Bio          string            `bson:"bio,omitempty" json:"bio,omitempty"`
	Services     []ServiceOffering `bson:"services" json:"services"`
	PasswordHash string            `bson:"password_hash" json:"-"`
	TokenHash    string            `bson:"token_hash,omitempty" json:"-"`
	FCMToken     string            `bson:"fcm_token,omitempty" json:"-"`
	AvatarID     string            `bson:"avatar_id,omitempty" json:"avatarId,omitempty"`
	Verified     bool              `bson:"verified" json:"verified"`
	CreatedAt    time.Time         `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time         `bson:"updated_at" json:"updatedAt"`
}

// ProfessionalRegistration is the signup input for professionals.
type ProfessionalRegistration struct {
	Name      string            `json:"name" binding:"required"`
	Email     string            `json:"email" binding:"required,email"`
	Phone     string            `json:"phone,omitempty"`
	Specialty string            `json:"specialty" binding:"required"`
	Bio       string            `json:"bio,omitempty"`
	Services  []ServiceOffering `json:"services,omitempty"`
	Password  string            `json:"password" binding:"required,min=8"`
}
