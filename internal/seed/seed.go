package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/makona/awards-backend/internal/app/models"
	appRepos "github.com/makona/awards-backend/internal/app/repositories"
	"github.com/makona/awards-backend/internal/config"
	"github.com/makona/awards-backend/internal/pkg/apperrors"
	"github.com/makona/awards-backend/internal/pkg/auth"
)

func intPtr(v int) *int {
	return &v
}

// CreateDefaultData seeds the default admin account, category classes and
// award categories. Every insert tolerates an already-existing row so the
// seeding is safe to run on each startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	classRepo := appRepos.NewCategoryClassRepository(dbPool)
	categoryRepo := appRepos.NewCategoryRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	// --- Default admin account --- //
	adminEmail := config.GetEnv("ADMIN_EMAIL", "admin@makona.awards")
	adminPassword := config.GetEnv("ADMIN_PASSWORD", "changeme123")

	passwordHash, err := auth.HashPassword(adminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		finalErr = errors.Join(finalErr, err)
	} else {
		admin := &appModels.User{
			Email:        adminEmail,
			PasswordHash: passwordHash,
			FirstName:    "Makona",
			LastName:     "Admin",
			RoleType:     appModels.RoleAdmin,
			IsActive:     true,
		}
		if err := userRepo.Create(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Msg("Error creating default admin account")
			finalErr = errors.Join(finalErr, err)
		}
	}

	// --- Category classes --- //
	classes := []*appModels.CategoryClass{
		{Name: "Arts & Culture", Slug: "arts-culture", DisplayOrder: 1, IsActive: true},
		{Name: "Social Impact", Slug: "social-impact", DisplayOrder: 2, IsActive: true},
		{Name: "Innovation", Slug: "innovation", DisplayOrder: 3, IsActive: true},
	}
	classIDs := make(map[string]int64)
	for _, class := range classes {
		err := classRepo.Create(ctx, class)
		if err != nil && !errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
			lgr.Error().Err(err).Str("slug", class.Slug).Msg("Error creating category class")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
			existing, errGet := classRepo.GetAll(ctx, false)
			if errGet != nil {
				lgr.Error().Err(errGet).Msg("Error getting existing category classes")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			for _, e := range existing {
				if e.Slug == class.Slug {
					class.ID = e.ID
					break
				}
			}
		}
		classIDs[class.Slug] = class.ID
	}

	// --- Award categories --- //
	artsID := classIDs["arts-culture"]
	socialID := classIDs["social-impact"]
	innovationID := classIDs["innovation"]

	categories := []*appModels.Category{
		{
			ClassID:          classPtr(artsID),
			Name:             "Best Music Artist",
			Slug:             "best-music-artist",
			Description:      "Recognizes an outstanding musical performer.",
			IsActive:         true,
			RequiresPhoto:    true,
			RequiresAudio:    true,
			MaxAudioDuration: intPtr(600),
		},
		{
			ClassID:          classPtr(artsID),
			Name:             "Best Short Film",
			Slug:             "best-short-film",
			Description:      "Recognizes an outstanding short film production.",
			IsActive:         true,
			RequiresPhoto:    true,
			RequiresVideo:    true,
			MaxVideoDuration: intPtr(1800),
		},
		{
			ClassID:           classPtr(artsID),
			Name:              "Best Visual Artist",
			Slug:              "best-visual-artist",
			Description:       "Recognizes an outstanding painter, photographer or designer.",
			IsActive:          true,
			RequiresPhoto:     true,
			RequiresPortfolio: true,
		},
		{
			ClassID:           classPtr(socialID),
			Name:              "Community Project of the Year",
			Slug:              "community-project-of-the-year",
			Description:       "Recognizes a project with measurable community impact.",
			IsActive:          true,
			RequiresPhoto:     true,
			RequiresDocuments: true,
		},
		{
			ClassID:           classPtr(innovationID),
			Name:              "Young Innovator",
			Slug:              "young-innovator",
			Description:       "Recognizes an emerging innovator or founder.",
			IsActive:          true,
			RequiresPhoto:     true,
			RequiresVideo:     true,
			RequiresDocuments: true,
			MaxVideoDuration:  intPtr(300),
		},
	}

	for _, category := range categories {
		if category.ClassID != nil && *category.ClassID == 0 {
			category.ClassID = nil
		}
		if err := categoryRepo.Create(ctx, category); err != nil && !errors.Is(err, apperrors.ErrCategoryAlreadyExists) {
			lgr.Error().Err(err).Str("slug", category.Slug).Msg("Error creating category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Msg("Default data check complete.")
	return finalErr
}

func classPtr(id int64) *int64 {
	return &id
}
