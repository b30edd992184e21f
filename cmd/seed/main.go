// Seed populates a development database with the showcase rooms and the
// configured admin account. It is the only place dev/test data is
// materialized; the server and its auth logic never seed implicitly.
package main

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/config"
	"stayhub/internal/db"
	"stayhub/internal/model"
	"stayhub/internal/repository"
)

type seedRoom struct {
	Title       string
	Description string
	Price       int64
	Capacity    int
	Location    string
	ImageURL    string
	Features    []string
}

var seedRooms = []seedRoom{
	{
		Title:       "Deluxe Suite",
		Description: "A luxurious and elegant room with premium amenities. King bed, balcony and modern design.",
		Price:       25000,
		Capacity:    2,
		Location:    "Floor 5, Wing A",
		ImageURL:    "/room1.jpg",
		Features:    []string{"Wifi", "TV", "Balcony", "City view"},
	},
	{
		Title:       "Standard Double Room",
		Description: "A comfortable room for two. Queen bed, tasteful interior and a calm atmosphere.",
		Price:       12000,
		Capacity:    2,
		Location:    "Floor 2, Wing B",
		ImageURL:    "/room2.jpg",
		Features:    []string{"Wifi", "TV", "City view"},
	},
	{
		Title:       "Family Apartment",
		Description: "A spacious suite for the whole family. Two bedrooms, living room and an equipped kitchen.",
		Price:       45000,
		Capacity:    4,
		Location:    "Floor 10, Wing A",
		ImageURL:    "/room3.jpg",
		Features:    []string{"Wifi", "TV", "Kitchen", "Living room"},
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	if cfg.MySQLDSN == "" {
		log.Fatal("MYSQL_DSN must be set to seed a database")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Room{},
		&model.Reservation{},
		&model.Review{},
		&model.ContactMessage{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()

	created, err := seedRoomCatalogue(ctx, repository.NewRoomRepository(gormDB))
	if err != nil {
		log.Fatalf("Failed to seed rooms: %v", err)
	}
	log.Printf("Rooms created: %d", created)

	if err := ensureAdminUser(ctx, cfg, repository.NewUserRepository(gormDB)); err != nil {
		log.Fatalf("Failed to ensure admin user: %v", err)
	}

	log.Println("Seed completed successfully!")
}

// seedRoomCatalogue inserts the showcase rooms, but only into an empty
// catalogue so re-running the script never duplicates them.
func seedRoomCatalogue(ctx context.Context, repo repository.RoomRepository) (int, error) {
	existing, err := repo.List(ctx, repository.RoomFilters{})
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Printf("Rooms already present (%d), skipping room seed", len(existing))
		return 0, nil
	}

	created := 0
	for _, sr := range seedRooms {
		features, err := json.Marshal(sr.Features)
		if err != nil {
			return created, err
		}
		room := &model.Room{
			Title:       sr.Title,
			Description: sr.Description,
			Price:       sr.Price,
			Capacity:    sr.Capacity,
			Location:    sr.Location,
			ImageURL:    sr.ImageURL,
			Features:    features,
			IsAvailable: true,
		}
		if err := repo.Create(ctx, room); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

// ensureAdminUser creates or elevates the account named by ADMIN_EMAIL.
func ensureAdminUser(ctx context.Context, cfg *config.Config, repo repository.UserRepository) error {
	email := strings.TrimSpace(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		log.Println("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}
	if len(cfg.AdminPassword) < 6 {
		log.Println("ADMIN_PASSWORD must be at least 6 characters, skipping admin seed")
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	existing, err := repo.FindByEmail(ctx, email)
	if err == nil {
		existing.PasswordHash = string(passwordHash)
		existing.IsAdmin = true
		if err := repo.Update(ctx, existing); err != nil {
			return err
		}
		log.Printf("Admin user updated: %s", email)
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: string(passwordHash),
		FirstName:    "Admin",
		LastName:     "User",
		IsAdmin:      true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin user created: %s", email)
	return nil
}
