package config

import (
	"context"
	"log"

	"hostelcare/internal/adapters/persistence/models"
	"hostelcare/internal/adapters/persistence/repositories"
	"hostelcare/internal/core/domain"
	"hostelcare/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	users repositories.UserRepository
	cfg   SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(users repositories.UserRepository, cfg SeedConfig) *Seeder {
	return &Seeder{users: users, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedWarden(ctx); err != nil {
		return err
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedWarden creates the configured warden when no account uses that email.
// This is for development only; production wardens sign up normally.
func (s *Seeder) seedWarden(ctx context.Context) error {
	if s.cfg.WardenEmail == "" || s.cfg.WardenPassword == "" {
		log.Println("⚠️ Skipping warden seed: SEED_WARDEN_EMAIL / SEED_WARDEN_PASSWORD not set")
		return nil
	}

	exists, err := s.users.ExistsByEmail(ctx, s.cfg.WardenEmail)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashedPassword, err := password.Hash(s.cfg.WardenPassword)
	if err != nil {
		return err
	}

	warden := &models.User{
		FullName: s.cfg.WardenName,
		Email:    s.cfg.WardenEmail,
		Password: hashedPassword,
		Role:     domain.RoleWarden,
	}
	if err := s.users.Create(ctx, warden); err != nil {
		return err
	}

	log.Printf("✅ Warden user created: %s", warden.Email)
	return nil
}
