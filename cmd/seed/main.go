// Package main seeds the database with the item-type taxonomy, a few
// catalog items and two demo accounts. Safe to run repeatedly.
package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mediashelf/media-tracker/internal/core/domain"
	"github.com/mediashelf/media-tracker/internal/infrastructure/config"
	mongodb "github.com/mediashelf/media-tracker/internal/infrastructure/db/mongo"
	"github.com/mediashelf/media-tracker/pkg/logger"
)

var itemTypes = []string{"movie", "series", "book", "game", "anime", "other"}

var items = []domain.Item{
	{Name: "The Matrix", Type: "movie", Slug: "the-matrix", Description: "A hacker discovers reality is a simulation.", Tags: []string{"action", "sci-fi"}},
	{Name: "Alien", Type: "movie", Slug: "alien", Description: "The crew of the Nostromo picks up a distress call.", Tags: []string{"horror", "sci-fi"}},
	{Name: "Breaking Bad", Type: "series", Slug: "breaking-bad", Description: "A chemistry teacher turns to cooking meth.", Tags: []string{"crime", "drama"}},
	{Name: "The Hobbit", Type: "book", Slug: "the-hobbit", Description: "Bilbo Baggins is swept into a quest.", Tags: []string{"fantasy"}},
	{Name: "Outer Wilds", Type: "game", Slug: "outer-wilds", Description: "A space exploration mystery stuck in a time loop.", Tags: []string{"exploration", "puzzle"}},
	{Name: "Fullmetal Alchemist: Brotherhood", Type: "anime", Slug: "fullmetal-alchemist-brotherhood", Description: "Two brothers search for the philosopher's stone.", Tags: []string{"adventure", "fantasy"}},
}

func main() {
	cfg := config.Load(slog.Default())
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	itemRepo := mongodb.NewItemRepository(db)
	typeRepo := mongodb.NewItemTypeRepository(db)
	tagRepo := mongodb.NewTagRepository(db)

	for _, ensure := range []func(context.Context) error{
		userRepo.EnsureIndexes, itemRepo.EnsureIndexes, typeRepo.EnsureIndexes, tagRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	if err := typeRepo.Ensure(ctx, itemTypes); err != nil {
		log.Fatal().Err(err).Msg("item type seeding failed")
	}
	log.Info().Int("count", len(itemTypes)).Msg("item types ensured")

	seeded := 0
	for i := range items {
		item := items[i]
		if err := tagRepo.Ensure(ctx, item.Tags); err != nil {
			log.Fatal().Err(err).Msg("tag seeding failed")
		}
		if _, err := itemRepo.Create(ctx, &item); err != nil {
			var dup *domain.DuplicateFieldError
			if errors.As(err, &dup) {
				continue
			}
			log.Fatal().Err(err).Str("item", item.Name).Msg("item seeding failed")
		}
		seeded++
	}
	log.Info().Int("seeded", seeded).Int("skipped", len(items)-seeded).Msg("catalog items")

	seedUser(ctx, userRepo, log, "admin", "admin@mediashelf.example", "admin123456", domain.RoleAdmin)
	seedUser(ctx, userRepo, log, "demo", "demo@mediashelf.example", "demo12345678", domain.RoleUser)
}

func seedUser(ctx context.Context, repo *mongodb.UserRepository, log zerolog.Logger, username, email, password, role string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("password hashing failed")
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Lists:        domain.DefaultLists(),
		Role:         role,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			log.Info().Str("username", username).Msg("user already present")
			return
		}
		log.Fatal().Err(err).Str("username", username).Msg("user seeding failed")
	}
	log.Info().Str("username", username).Str("email", email).Str("role", role).Msg("user seeded")
}
