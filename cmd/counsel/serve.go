package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aura/counsel/internal/server"
)

var (
	servePort         int
	serveUniversities string
	serveScholarships string
	serveExams        string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the recommendation, metadata, scholarship, and auth endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveUniversities, "universities", "data/universities.json", "Path to the universities dataset")
	serveCmd.Flags().StringVar(&serveScholarships, "scholarships", "data/scholarships.json", "Path to the scholarships dataset")
	serveCmd.Flags().StringVar(&serveExams, "exams", "data/entrance_exams.json", "Path to the entrance exams dataset")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	// Get database URL from environment
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}

	// Without an API key the server still starts; the oracle-backed
	// recommendation route reports itself unavailable.
	apiKey := os.Getenv("GEMINI_API_KEY")

	cfg := server.Config{
		Port:             servePort,
		DatabaseURL:      databaseURL,
		APIKey:           apiKey,
		Model:            os.Getenv("GEMINI_MODEL"),
		UniversitiesPath: serveUniversities,
		ScholarshipsPath: serveScholarships,
		ExamsPath:        serveExams,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
