package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/mufradat/mufradat-backend/internal/config"
	"github.com/mufradat/mufradat-backend/internal/database"
	"github.com/mufradat/mufradat-backend/internal/logger"
	"github.com/mufradat/mufradat-backend/internal/model"
	"github.com/mufradat/mufradat-backend/internal/repository"
	"github.com/mufradat/mufradat-backend/internal/service"
	"golang.org/x/crypto/bcrypt"
)

const (
	demoEmail    = "demo@mufradat.local"
	demoName     = "Demo Learner"
	demoPassword = "demo-password"
)

type seedWord struct {
	english string
	arabic  string
	root    string
	pos     string
	tags    []string
	noun    *model.NounAttributes
	verb    *model.VerbAttributes
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)
	tagRepo := repository.NewTagRepository(pool)
	wordRepo := repository.NewWordRepository(pool)

	tagService := service.NewTagService(tagRepo, log)
	wordService := service.NewWordService(wordRepo, log)

	fmt.Println("=== Seeding Demo Vocabulary ===")

	// Find or create the demo user
	var userID int
	existing, err := userRepo.GetByEmail(ctx, demoEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			fmt.Printf("Demo user %s not found. Creating it...\n", demoEmail)
			hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cfg.BcryptCost)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to hash password")
			}
			newUser := &model.User{
				Email:        demoEmail,
				Name:         demoName,
				PasswordHash: string(hash),
			}
			if err := userRepo.Create(ctx, newUser); err != nil {
				log.Fatal().Err(err).Msg("Failed to create demo user")
			}
			userID = newUser.ID
			fmt.Printf("Created demo user with ID: %d\n", userID)
		} else {
			log.Fatal().Err(err).Msg("Failed to check existing user")
		}
	} else {
		userID = existing.ID
		fmt.Printf("Found existing demo user with ID: %d\n", userID)
	}

	// Tags first; words reference them by name below
	tagNames := []string{"food", "family", "travel", "verbs", "quran"}
	tagIDs := map[string]string{}
	for _, name := range tagNames {
		tag, err := tagService.Create(ctx, userID, name)
		if err != nil {
			if err == service.ErrTagExists {
				fmt.Printf("Tag %q already exists, skipping\n", name)
				continue
			}
			log.Fatal().Err(err).Str("tag", name).Msg("Failed to create tag")
		}
		tagIDs[name] = tag.ID.String()
	}

	// Reload the full tag list so re-runs pick up pre-existing IDs
	allTags, err := tagService.List(ctx, userID)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to list tags")
	}
	for _, t := range allTags {
		tagIDs[t.Name] = t.ID.String()
	}

	words := []seedWord{
		{english: "bread", arabic: "خبز", root: "خبز", pos: "noun", tags: []string{"food"},
			noun: &model.NounAttributes{Plural: "أخباز", Gender: "masculine"}},
		{english: "water", arabic: "ماء", pos: "noun", tags: []string{"food"},
			noun: &model.NounAttributes{Plural: "مياه", Gender: "masculine"}},
		{english: "apple", arabic: "تفاحة", pos: "noun", tags: []string{"food"},
			noun: &model.NounAttributes{Plural: "تفاح", Gender: "feminine"}},
		{english: "milk", arabic: "حليب", pos: "noun", tags: []string{"food"},
			noun: &model.NounAttributes{Gender: "masculine"}},
		{english: "father", arabic: "أب", pos: "noun", tags: []string{"family"},
			noun: &model.NounAttributes{Plural: "آباء", Gender: "masculine"}},
		{english: "mother", arabic: "أم", pos: "noun", tags: []string{"family"},
			noun: &model.NounAttributes{Plural: "أمهات", Gender: "feminine"}},
		{english: "brother", arabic: "أخ", pos: "noun", tags: []string{"family"},
			noun: &model.NounAttributes{Plural: "إخوة", Gender: "masculine"}},
		{english: "airport", arabic: "مطار", root: "طير", pos: "noun", tags: []string{"travel"},
			noun: &model.NounAttributes{Plural: "مطارات", Gender: "masculine"}},
		{english: "ticket", arabic: "تذكرة", pos: "noun", tags: []string{"travel"},
			noun: &model.NounAttributes{Plural: "تذاكر", Gender: "feminine"}},
		{english: "to eat", arabic: "أكل", root: "أكل", pos: "verb", tags: []string{"verbs", "food"},
			verb: &model.VerbAttributes{Form: "I", Present: "يأكل", Masdar: "أكل"}},
		{english: "to drink", arabic: "شرب", root: "شرب", pos: "verb", tags: []string{"verbs", "food"},
			verb: &model.VerbAttributes{Form: "I", Present: "يشرب", Masdar: "شرب"}},
		{english: "to travel", arabic: "سافر", root: "سفر", pos: "verb", tags: []string{"verbs", "travel"},
			verb: &model.VerbAttributes{Form: "III", Present: "يسافر", Masdar: "سفر"}},
		{english: "to write", arabic: "كتب", root: "كتب", pos: "verb", tags: []string{"verbs"},
			verb: &model.VerbAttributes{Form: "I", Present: "يكتب", Masdar: "كتابة"}},
		{english: "book", arabic: "كتاب", root: "كتب", pos: "noun", tags: []string{"quran"},
			noun: &model.NounAttributes{Plural: "كتب", Gender: "masculine"}},
		{english: "light", arabic: "نور", root: "نور", pos: "noun", tags: []string{"quran"},
			noun: &model.NounAttributes{Plural: "أنوار", Gender: "masculine"}},
		{english: "in", arabic: "في", pos: "particle", tags: nil},
		{english: "from", arabic: "من", pos: "particle", tags: nil},
		{english: "good morning", arabic: "صباح الخير", pos: "phrase", tags: nil},
		{english: "thank you very much", arabic: "شكرا جزيلا", pos: "phrase", tags: nil},
		{english: "peace be upon you", arabic: "السلام عليكم", pos: "phrase", tags: []string{"quran"}},
	}

	successCount := 0
	for _, w := range words {
		req := &model.CreateWordRequest{
			English:      w.english,
			Arabic:       w.arabic,
			Root:         w.root,
			PartOfSpeech: w.pos,
			Noun:         w.noun,
			Verb:         w.verb,
		}
		for _, name := range w.tags {
			if id, ok := tagIDs[name]; ok {
				req.TagIDs = append(req.TagIDs, id)
			}
		}

		if _, err := wordService.Create(ctx, userID, req); err != nil {
			fmt.Printf("Error creating word %q: %v\n", w.english, err)
		} else {
			successCount++
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d words.\n", successCount, len(words))
}
