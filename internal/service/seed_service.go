package service

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/lms-go-api/internal/models"
	"github.com/noah-isme/lms-go-api/internal/repository"
)

// SeedService bootstraps default accounts so a fresh deployment is usable.
type SeedService interface {
	EnsureDefaultUsers(ctx context.Context) error
}

type seedService struct {
	users    repository.UserRepository
	password string
	logger   zerolog.Logger
}

// NewSeedService constructs a SeedService instance. The password is used for
// every seeded account.
func NewSeedService(users repository.UserRepository, password string, logger zerolog.Logger) SeedService {
	return &seedService{
		users:    users,
		password: password,
		logger:   logger.With().Str("component", "seed_service").Logger(),
	}
}

// EnsureDefaultUsers creates one account per role when the users table is empty.
func (s *seedService) EnsureDefaultUsers(ctx context.Context) error {
	total, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if total > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	defaults := []models.User{
		{
			Email:        "admin@lms.local",
			FullName:     "Site Admin",
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		},
		{
			Email:        "instructor@lms.local",
			FullName:     "In Structor",
			PasswordHash: string(hash),
			Role:         models.RoleInstructor,
			Bio:          "Teaches Go",
		},
		{
			Email:         "student@lms.local",
			FullName:      "Stu Dent",
			PasswordHash:  string(hash),
			Role:          models.RoleStudent,
			StudentNumber: "S-001",
		},
	}

	for i := range defaults {
		if err := s.users.Create(ctx, &defaults[i]); err != nil {
			return err
		}
	}

	s.logger.Info().Int("count", len(defaults)).Msg("seeded default users")

	return nil
}
