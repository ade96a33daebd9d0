package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"

	"docqa/internal/config"
	"docqa/internal/ingest"
	"docqa/internal/llm"
	"docqa/internal/storage"
	"docqa/internal/vectorstore"
)

func main() {
	dumpDir := flag.String("dump-dir", "", "write per-file diagnostic dumps under this directory")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file-or-directory>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	root := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr so the progress bar owns stdout
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	docRepo := storage.NewDocumentRepo(db)
	chunkRepo := storage.NewChunkRepo(db)

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize)

	pipeline := ingest.NewPipeline(docRepo, chunkRepo, embedder, vectorStore, cfg.QdrantCollection, cfg.ChunkSize, cfg.ChunkOverlap)
	if *dumpDir != "" {
		pipeline.SetDumpDir(*dumpDir)
	}

	// Pre-walk so the progress bar knows its total
	files, err := ingest.NewWalker(nil, nil).Walk(root)
	if err != nil {
		log.Fatalf("Failed to discover files: %v", err)
	}
	if len(files) == 0 {
		fmt.Fprintf(os.Stderr, "no supported files found under %s\n", root)
		return
	}

	bar := progressbar.Default(int64(len(files)), "indexing")
	summary, err := pipeline.Run(ctx, root, func(string) {
		_ = bar.Add(1)
	})
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}

	fmt.Printf("\nindexed %d, skipped %d, failed %d (of %d files)\n",
		summary.Indexed, summary.Skipped, summary.Failed, summary.Total)

	if summary.AllFailed() {
		os.Exit(1)
	}
}
