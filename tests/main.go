package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"turnia/config"
	"turnia/database"
	"turnia/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds the local database with demo accounts and bookings for manual
// testing. Clears the collections first; do not point this at anything real.
func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	usersColl := db.Collection("users")
	prosColl := db.Collection("professionals")
	bookingsColl := db.Collection("bookings")
	for _, coll := range []string{"users", "professionals", "bookings"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}
	now := time.Now()

	specialties := []string{"psicologia", "nutricion", "derecho"}
	serviceNames := map[string][]string{
		"psicologia": {"Consulta inicial", "Sesión de seguimiento"},
		"nutricion":  {"Plan alimentario", "Control mensual"},
		"derecho":    {"Consulta legal", "Revisión de contrato"},
	}

	var pros []interface{}
	var firstPro models.Professional
	for i, spec := range specialties {
		var services []models.ServiceOffering
		for _, name := range serviceNames[spec] {
			services = append(services, models.ServiceOffering{
				ID:          uuid.New().String(),
				Description: name,
				Price:       float64(randomInt(20, 80)),
				Currency:    "usd",
				Duration:    []int{15, 30, 45}[rand.Intn(3)],
			})
		}
		p := models.Professional{
			ID:           uuid.New().String(),
			Name:         fmt.Sprintf("Profesional %d", i+1),
			Email:        fmt.Sprintf("pro%d@turnia.dev", i+1),
			PasswordHash: string(hash),
			Specialty:    spec,
			Bio:          fmt.Sprintf("Especialista en %s con 10 años de experiencia.", spec),
			Services:     services,
			Verified:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if i == 0 {
			firstPro = p
		}
		pros = append(pros, p)
	}
	if _, err := prosColl.InsertMany(ctx, pros); err != nil {
		log.Fatalf("Failed to seed professionals: %v", err)
	}

	client := models.User{
		ID:           uuid.New().String(),
		Name:         "Ana García",
		Email:        "ana@turnia.dev",
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := usersColl.InsertOne(ctx, client); err != nil {
		log.Fatalf("Failed to seed client: %v", err)
	}

	// One booking per lifecycle stage against the first professional.
	stages := []struct {
		status  string
		meeting models.MeetingState
		offset  time.Duration
	}{
		{models.BookingPendingPayment, models.MeetingPending, 48 * time.Hour},
		{models.BookingPaid, models.MeetingPending, 24 * time.Hour},
		{models.BookingPaid, models.MeetingWaiting, time.Hour},
		{models.BookingPaid, models.MeetingCompleted, -24 * time.Hour},
		{models.BookingCancelled, models.MeetingCancelled, 12 * time.Hour},
	}
	svc := firstPro.Services[0]
	var bookings []interface{}
	for _, st := range stages {
		b := models.Booking{
			ID:                 uuid.New().String(),
			ClientID:           client.ID,
			ProfessionalID:     firstPro.ID,
			ServiceID:          svc.ID,
			ServiceDescription: svc.Description,
			Amount:             svc.Price,
			Currency:           svc.Currency,
			ScheduledAt:        now.Add(st.offset),
			Duration:           svc.Duration,
			JitsiRoom:          "turnia-" + uuid.New().String(),
			Status:             st.status,
			MeetingStatus:      st.meeting,
			Urgency:            "normal",
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if st.status != models.BookingPendingPayment {
			b.PaymentID = "pi_seed_" + uuid.New().String()[:8]
		}
		bookings = append(bookings, b)
	}
	if _, err := bookingsColl.InsertMany(ctx, bookings); err != nil {
		log.Fatalf("Failed to seed bookings: %v", err)
	}

	log.Printf("Seeded %d professionals, 1 client (ana@turnia.dev / password123), %d bookings",
		len(pros), len(bookings))
}

// randomInt returns a random integer between min and max (inclusive).
func randomInt(min, max int) int {
	return rand.Intn(max-min+1) + min
}
