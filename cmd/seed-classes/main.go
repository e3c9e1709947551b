package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gymwarriors/fitnesshub-backend/internal/config"
	"github.com/gymwarriors/fitnesshub-backend/internal/database"
	"github.com/gymwarriors/fitnesshub-backend/internal/logger"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"github.com/gymwarriors/fitnesshub-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedPassword = "fitnesshub"
	trainerEmail = "coach.rina@fitnesshub.id"
	memberCount  = 20
)

type classTemplate struct {
	name      string
	category  string
	startTime string
	endTime   string
	capacity  int
}

var weeklyClasses = []classTemplate{
	{"Morning Spin", "cardio", "06:30", "07:15", 12},
	{"Power Yoga", "yoga", "08:00", "09:00", 15},
	{"Lunch HIIT", "hiit", "12:15", "12:45", 10},
	{"Barbell Basics", "strength", "17:30", "18:30", 8},
	{"Evening Pilates", "pilates", "19:00", "20:00", 14},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	userRepo := repository.NewUserRepository(pool)
	trainerRepo := repository.NewTrainerRepository(pool)
	classService := service.NewClassService(
		repository.NewClassRepository(pool),
		repository.NewBookingRepository(pool),
		trainerRepo,
		service.NewRedisClassCache(rdb, cfg.ClassCacheTTL, log),
		log,
	)

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash seed password")
	}

	fmt.Println("=== Seeding demo schedule ===")

	trainer, err := trainerRepo.GetByEmail(ctx, trainerEmail)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		trainer = &model.Trainer{
			Name:           "Rina Wati",
			Email:          trainerEmail,
			PasswordHash:   string(hash),
			Role:           model.StaffRoleTrainer,
			Specialization: "functional fitness",
			Experience:     6,
		}
		if err := trainerRepo.Create(ctx, trainer); err != nil {
			log.Fatal().Err(err).Msg("Failed to create trainer")
		}
		fmt.Printf("Created trainer %s\n", trainer.Email)
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to look up trainer")
	default:
		fmt.Printf("Found existing trainer %s\n", trainer.Email)
	}

	names := []string{
		"Budi Santoso", "Siti Aminah", "Andi Pratama", "Joko Susilo", "Ayu Lestari",
		"Dodi Kusuma", "Eka Putri", "Fahri Hamzah", "Gita Savitri", "Hendra Gunawan",
		"Ika Sari", "Lukman Hakim", "Maya Septiana", "Nanda Pratama", "Oki Setiana",
		"Putri Dian", "Rafi Ahmad", "Toni Setiawan", "Wahyu Hidayat", "Zaki Anwar",
	}

	members := 0
	for i := range memberCount {
		u := &model.User{
			Name:         names[i%len(names)],
			Email:        fmt.Sprintf("member%02d@fitnesshub.id", i+1),
			PasswordHash: string(hash),
			Role:         model.UserRole,
			Status:       model.UserStatusActive,
		}
		// Every third member stays pending so the approval flow can be tried.
		if i%3 == 2 {
			u.Status = model.UserStatusPending
		}

		if err := userRepo.Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicateEmail) {
				continue
			}
			fmt.Printf("Error creating member %s: %v\n", u.Email, err)
			continue
		}
		members++
	}
	fmt.Printf("Created %d/%d members\n", members, memberCount)

	classes := 0
	start := time.Now().AddDate(0, 0, 1)
	for day := range 7 {
		date := start.AddDate(0, 0, day).Format(time.DateOnly)
		for _, tpl := range weeklyClasses {
			req := &model.CreateClassRequest{
				Name:      tpl.name,
				Category:  tpl.category,
				Date:      date,
				StartTime: tpl.startTime,
				EndTime:   tpl.endTime,
				Capacity:  tpl.capacity,
				TrainerID: trainer.ID,
			}
			if _, err := classService.CreateClass(ctx, req, trainer.ID, trainer.Role); err != nil {
				fmt.Printf("Error scheduling %s on %s: %v\n", tpl.name, date, err)
				continue
			}
			classes++
		}
	}

	fmt.Printf("\nSeed completed! %d members, %d classes. Password for every account: %s\n", members, classes, seedPassword)
}
