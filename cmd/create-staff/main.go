package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/gymwarriors/fitnesshub-backend/internal/config"
	"github.com/gymwarriors/fitnesshub-backend/internal/database"
	"github.com/gymwarriors/fitnesshub-backend/internal/logger"
	"github.com/gymwarriors/fitnesshub-backend/internal/model"
	"github.com/gymwarriors/fitnesshub-backend/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	trainerRepo := repository.NewTrainerRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Create Staff Account ===")

	name := prompt(reader, "Name: ")
	if name == "" {
		fmt.Println("Error: name is required")
		os.Exit(1)
	}

	email := strings.ToLower(prompt(reader, "Email: "))
	if email == "" {
		fmt.Println("Error: email is required")
		os.Exit(1)
	}
	if _, err := userRepo.GetByEmail(ctx, email); err == nil {
		fmt.Println("Error: email already belongs to a member account")
		os.Exit(1)
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatal().Err(err).Msg("Failed to check email")
	}

	role, ok := model.ParseStaffRole(prompt(reader, "Role [trainer|admin|it_admin] (default trainer): "))
	if !ok {
		role = model.StaffRoleTrainer
	}

	fmt.Print("Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		fmt.Println("Error reading password")
		os.Exit(1)
	}
	password := string(bytePassword)
	if len(password) < 6 {
		fmt.Println("Error: password must be at least 6 characters")
		os.Exit(1)
	}

	trainer := &model.Trainer{
		Name:  name,
		Email: email,
		Role:  role,
	}
	if role == model.StaffRoleTrainer {
		trainer.Specialization = prompt(reader, "Specialization (optional): ")
		if exp := prompt(reader, "Years of experience (optional): "); exp != "" {
			n, err := strconv.Atoi(exp)
			if err != nil || n < 0 {
				fmt.Println("Error: experience must be a non-negative number")
				os.Exit(1)
			}
			trainer.Experience = n
		}
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	trainer.PasswordHash = string(hashedPassword)

	if err := trainerRepo.Create(ctx, trainer); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			fmt.Println("Error: email already registered")
			os.Exit(1)
		}
		log.Fatal().Err(err).Msg("Failed to create staff account")
	}

	fmt.Printf("\nSuccess! %s '%s' (%s) created with ID: %s\n", trainer.Role, trainer.Name, trainer.Email, trainer.ID)
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Print(label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
