package main

import (
	"emailogan/internal/auth"
	"emailogan/internal/config"
	"emailogan/internal/openai"
	"emailogan/internal/server"
	"emailogan/internal/vectorstore"
)

// @title Emailogan API
// @version 1.0
// @description Email knowledge base with AI-assisted reply generation
// @BasePath /
func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	// OpenAI client for embeddings and reply generation
	ai, err := openai.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("OpenAI client initialization failed")
	}

	// Vector store connection (creates the collection when missing)
	store, err := vectorstore.NewStore(cfg, openai.EmbeddingDimension, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Vector store initialization failed")
	}
	logger.Info().Str("collection", cfg.QdrantCollection).Msg("Vector store ready")

	authMgr := auth.NewManager(cfg)

	// Create and initialize server
	srv := server.New(cfg, ai, store, authMgr, logger)
	srv.Initialize()

	// Start server
	if err := srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}
