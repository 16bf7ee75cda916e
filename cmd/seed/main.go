package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"hotelnest/internal/database"
	"hotelnest/internal/domain"
	"hotelnest/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hotelnest.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM room_booked_dates")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)

	// ================== USERS ==================
	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("Admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		Email:        "admin@hotelnest.io",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		Name:         "Nest Admin",
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal("seed admin failed:", err)
	}
	log.Println("Admin created: admin@hotelnest.io / Admin123")

	guestNames := []string{"Asel Nurlan", "Marco Rivera", "Dana Whitfield"}
	for i, name := range guestNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("Guest123"), bcrypt.DefaultCost)
		guest := &domain.User{
			Email:        fmt.Sprintf("guest%d@hotelnest.io", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleGuest,
			Name:         name,
			AvatarURL:    fmt.Sprintf("https://i.pravatar.cc/150?img=%d", i+11),
		}
		if err := users.Create(ctx, guest); err != nil {
			log.Fatal("seed guest failed:", err)
		}
	}

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	discount := func(v float64) *float64 { return &v }

	seedRooms := []domain.Room{
		{
			Name:        "Harbor View Standard",
			Location:    "Lisbon, Portugal",
			RoomType:    domain.RoomStandard,
			Capacity:    2,
			Beds:        1,
			SizeSqft:    280,
			Price:       120,
			Amenities:   []string{"Wi-Fi", "Air conditioning", "Flat-screen TV"},
			Description: "A bright standard room overlooking the Tagus estuary, steps from the Alfama tram line.",
			ImageURL:    "https://images.hotelnest.io/rooms/harbor-standard.jpg",
		},
		{
			Name:          "Old Town Deluxe",
			Location:      "Prague, Czech Republic",
			RoomType:      domain.RoomDeluxe,
			Capacity:      3,
			Beds:          2,
			SizeSqft:      410,
			Price:         190,
			DiscountPrice: discount(155),
			Amenities:     []string{"Wi-Fi", "Minibar", "Rain shower", "City view"},
			Description:   "Deluxe room with vaulted ceilings a short walk from the astronomical clock.",
			ImageURL:      "https://images.hotelnest.io/rooms/oldtown-deluxe.jpg",
		},
		{
			Name:          "Skyline Suite",
			Location:      "Singapore",
			RoomType:      domain.RoomSuite,
			Capacity:      3,
			Beds:          2,
			SizeSqft:      720,
			Price:         420,
			DiscountPrice: discount(360),
			Amenities:     []string{"Wi-Fi", "Bathtub", "Lounge area", "Espresso machine", "Skyline view"},
			Description:   "Corner suite on the 41st floor with a separate lounge and floor-to-ceiling windows.",
			ImageURL:      "https://images.hotelnest.io/rooms/skyline-suite.jpg",
		},
		{
			Name:        "Garden Family Room",
			Location:    "Kyoto, Japan",
			RoomType:    domain.RoomFamily,
			Capacity:    3,
			Beds:        3,
			SizeSqft:    540,
			Price:       240,
			Amenities:   []string{"Wi-Fi", "Tatami corner", "Tea set", "Garden view"},
			Description: "Ground-floor family room opening onto a private moss garden near the Philosopher's Path.",
			ImageURL:    "https://images.hotelnest.io/rooms/garden-family.jpg",
		},
		{
			Name:          "Dune Deluxe",
			Location:      "Marrakesh, Morocco",
			RoomType:      domain.RoomDeluxe,
			Capacity:      2,
			Beds:          1,
			SizeSqft:      380,
			Price:         165,
			DiscountPrice: discount(132),
			Amenities:     []string{"Wi-Fi", "Plunge pool access", "Hammam", "Rooftop terrace"},
			Description:   "Riad-style deluxe room around a tiled courtyard, ten minutes from Jemaa el-Fnaa.",
			ImageURL:      "https://images.hotelnest.io/rooms/dune-deluxe.jpg",
		},
		{
			Name:        "Fjord Standard",
			Location:    "Bergen, Norway",
			RoomType:    domain.RoomStandard,
			Capacity:    2,
			Beds:        2,
			SizeSqft:    300,
			Price:       140,
			Amenities:   []string{"Wi-Fi", "Heated floors", "Blackout curtains"},
			Description: "Quiet standard twin near the Bryggen wharf with views toward Mount Floyen.",
			ImageURL:    "https://images.hotelnest.io/rooms/fjord-standard.jpg",
		},
	}

	for i := range seedRooms {
		if err := rooms.Create(ctx, &seedRooms[i]); err != nil {
			log.Fatal("seed room failed:", err)
		}
	}

	log.Printf("Done: %d rooms, %d users", len(seedRooms), len(guestNames)+1)
}
