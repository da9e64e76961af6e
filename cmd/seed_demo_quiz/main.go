// Command seed_demo_quiz runs the generation pipeline over a local document
// and persists the resulting quiz, giving a fresh install something to show.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"docquiz/internal/config"
	"docquiz/internal/database"
	"docquiz/internal/logger"
	"docquiz/internal/repository"
	"docquiz/internal/service"
	"docquiz/internal/synth"

	"go.uber.org/zap"
)

func main() {
	docPath := flag.String("doc", "", "path to a .txt or .pdf document to seed from")
	flag.Parse()
	if *docPath == "" {
		fmt.Println("usage: seed_demo_quiz -doc <path>")
		os.Exit(1)
	}

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	db, err := database.NewSQLXDB(cfg.GetDSN())
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db, "database/migrations"); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	data, err := os.ReadFile(*docPath)
	if err != nil {
		log.Fatal("Failed to read document", zap.String("path", *docPath), zap.Error(err))
	}

	repo := repository.NewQuizDatabaseAdapter(db)
	answerKeys := service.NewAnswerKeyCacheService(nil, cfg.Pipeline.AnswerKeyTTL)
	svc := service.NewQuizService(repo, answerKeys, synth.NewGenerator(nil), cfg)

	quiz, err := svc.GenerateFromDocument(ctx, *docPath, data)
	if err != nil {
		log.Fatal("Failed to generate quiz", zap.String("path", *docPath), zap.Error(err))
	}

	log.Info("Seeded demo quiz",
		zap.String("quizID", quiz.ID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Int("keySentences", len(quiz.Notes.KeySentences)),
	)
}
