// FILE: cmd/migrate/main.go
package main

import (
	"log"
	"os"

	"rag-admin-be/internal/model"
	"rag-admin-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 1: Setting up extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
		`CREATE EXTENSION IF NOT EXISTS vector;`,
	}
	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	color.Cyan("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.AIModel{},
		&model.KnowledgeBase{},
		&model.Datasource{},
		&model.Document{},
		&model.Chunk{},
		&model.GraphNode{},
		&model.GraphRelationship{},
		&model.ChatEngine{},
		&model.Chat{},
		&model.ChatMessage{},
		&model.DatabaseConnection{},
		&model.SQLQueryRecord{},
		&model.Feedback{},
		&model.EvaluationDataset{},
		&model.EvaluationItem{},
		&model.EvaluationTask{},
		&model.EvaluationResult{},
		&model.SiteSetting{},
		&model.Notification{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		color.Red("Error: AutoMigrate failed: %v", err)
		os.Exit(1)
	}

	color.Cyan("Step 3: Creating vector indexes and triggers...")

	postMigrationSQL := []string{
		// Function: set_current_timestamp_updated_at
		`CREATE OR REPLACE FUNCTION set_current_timestamp_updated_at() RETURNS trigger LANGUAGE plpgsql AS $$
		DECLARE _new_value TIMESTAMP WITH TIME ZONE;
		BEGIN
		  _new_value := now();
		  IF NEW.updated_at IS DISTINCT FROM _new_value THEN NEW.updated_at = _new_value; END IF;
		  RETURN NEW;
		END; $$;`,

		// ANN indexes for the cosine-distance lookups used by retrieval
		// and the graph explorer. HNSW works on empty tables, unlike
		// ivfflat which needs training data.
		`CREATE INDEX IF NOT EXISTS idx_chunks_embedding ON chunks USING hnsw (embedding vector_cosine_ops);`,
		`CREATE INDEX IF NOT EXISTS idx_graph_nodes_embedding ON graph_nodes USING hnsw (embedding vector_cosine_ops);`,

		// Uniqueness the application relies on: one default per model kind
		// and one default chat engine.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_ai_models_default_per_kind ON ai_models (kind) WHERE is_default;`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_chat_engines_single_default ON chat_engines ((TRUE)) WHERE is_default AND deleted_at IS NULL;`,
	}
	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			color.Yellow("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("✅ Success: Database migration completed.")
}
