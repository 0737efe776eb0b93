package professionalRepo

import (
	"context"
	"fmt"
	"time"

	"turnia/database"
	"turnia/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
}

// NewMongoProfessionalRepo creates a new instance of ProfessionalRepository using MongoDB.
func NewMongoProfessionalRepo() ProfessionalRepository {
	coll := database.DB().Collection("professionals")
	repo := &MongoProfessionalRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create professional indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoProfessionalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "specialty", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByID retrieves a professional by its unique ID.
func (r *MongoProfessionalRepo) GetByID(id string) (*models.Professional, error) {
	return r.GetByIDWithProjection(id, nil)
}

// GetByIDWithProjection retrieves a professional by ID using a projection.
func (r *MongoProfessionalRepo) GetByIDWithProjection(id string, projection bson.M) (*models.Professional, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne()
	if projection != nil {
		opts.SetProjection(projection)
	}

	var p models.Professional
	if err := r.coll.FindOne(ctx, bson.M{"id": id}, opts).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to fetch professional with id %s: %w", id, err)
	}
	return &p, nil
}

// GetByEmail retrieves a professional by email, or nil when none exists.
func (r *MongoProfessionalRepo) GetByEmail(email string) (*models.Professional, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var p models.Professional
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch professional with email %s: %w", email, err)
	}
	return &p, nil
}

// GetAll lists professionals, optionally filtered by specialty.
func (r *MongoProfessionalRepo) GetAll(specialty string) ([]models.Professional, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if specialty != "" {
		filter["specialty"] = specialty
	}

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	defer cursor.Close(ctx)

	var professionals []models.Professional
	if err := cursor.All(ctx, &professionals); err != nil {
		return nil, fmt.Errorf("failed to decode professionals: %w", err)
	}
	return professionals, nil
}

// Create inserts a new professional record.
func (r *MongoProfessionalRepo) Create(p *models.Professional) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create professional: %w", err)
	}
	return nil
}

// Update replaces an existing professional record.
func (r *MongoProfessionalRepo) Update(p *models.Professional) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update professional %s: %w", p.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("professional %s not found", p.ID)
	}
	return nil
}

// Delete removes a professional record by its ID.
func (r *MongoProfessionalRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete professional %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("professional %s not found", id)
	}
	return nil
}

func (r *MongoProfessionalRepo) setField(id string, fields bson.M) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields["updated_at"] = time.Now()
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update professional %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("professional %s not found", id)
	}
	return nil
}

// UpdateTokenHash stores the hash of the currently issued bearer token.
func (r *MongoProfessionalRepo) UpdateTokenHash(id, tokenHash string) error {
	return r.setField(id, bson.M{"token_hash": tokenHash})
}

// UpdateFCMToken stores the device push token.
func (r *MongoProfessionalRepo) UpdateFCMToken(id, fcmToken string) error {
	return r.setField(id, bson.M{"fcm_token": fcmToken})
}

// UpdateAvatar stores the Cloudinary public ID of the profile image.
func (r *MongoProfessionalRepo) UpdateAvatar(id, avatarID string) error {
	return r.setField(id, bson.M{"avatar_id": avatarID})
}
