package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aura/counsel/internal/analysis"
	"github.com/aura/counsel/internal/catalog"
	"github.com/aura/counsel/internal/config"
	"github.com/aura/counsel/internal/llm"
	"github.com/aura/counsel/internal/parsing"
	"github.com/aura/counsel/internal/recommend"
	"github.com/aura/counsel/internal/scholarships"
	"github.com/aura/counsel/internal/types"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate recommendations for a student profile",
	Long: `Reads a student profile JSON file and prints ranked university recommendations
plus matching scholarships and entrance exams.

By default the profile is sent through the analysis oracle; --local runs the
deterministic engine instead and needs no API key.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runRecommend,
}

var (
	recConfigPath   string
	recProfile      string
	recUniversities string
	recScholarships string
	recExams        string
	recAPIKey       string
	recModel        string
	recLocal        bool
	recVerbose      bool
)

func init() {
	// Config file flag (processed first)
	recommendCmd.Flags().StringVar(&recConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	recommendCmd.Flags().StringVarP(&recProfile, "profile", "p", "", "Path to student profile JSON file")
	recommendCmd.Flags().StringVar(&recUniversities, "universities", "", "Path to the universities dataset")
	recommendCmd.Flags().StringVar(&recScholarships, "scholarships", "", "Path to the scholarships dataset")
	recommendCmd.Flags().StringVar(&recExams, "exams", "", "Path to the entrance exams dataset")
	recommendCmd.Flags().BoolVar(&recLocal, "local", false, "Use the deterministic engine instead of the analysis oracle")
	recommendCmd.Flags().BoolVarP(&recVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	recommendCmd.Flags().StringVar(&recAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	recommendCmd.Flags().StringVar(&recModel, "model", "", "Model override for the analysis tier")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if recConfigPath != "" {
		loadedCfg, err := config.LoadConfig(recConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if recVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", recConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("profile") {
		cfg.Profile = recProfile
	}
	if cmd.Flags().Changed("universities") {
		cfg.Universities = recUniversities
	}
	if cmd.Flags().Changed("scholarships") {
		cfg.Scholarships = recScholarships
	}
	if cmd.Flags().Changed("exams") {
		cfg.Exams = recExams
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = recAPIKey
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = recModel
	}
	if cmd.Flags().Changed("local") {
		cfg.Local = recLocal
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = recVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Universities: "data/universities.json",
		Scholarships: "data/scholarships.json",
		Exams:        "data/entrance_exams.json",
	})

	// Step 4: Validate required fields
	if cfg.Profile == "" {
		return fmt.Errorf("--profile is required (via flag or config)")
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if !cfg.Local && cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for the oracle path; pass --local for the deterministic engine")
	}

	profile, err := readProfile(cfg.Profile)
	if err != nil {
		return err
	}

	store := catalog.NewStore(cfg.Universities)
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load universities dataset: %w", err)
	}

	finder := scholarships.NewFinder(cfg.Scholarships, cfg.Exams)
	if err := finder.Load(ctx); err != nil {
		return fmt.Errorf("failed to load finder datasets: %w", err)
	}

	output := map[string]any{
		"scholarships":   finder.FindScholarships(*profile),
		"entrance_exams": finder.FindExams(*profile),
	}

	if cfg.Local {
		service := recommend.NewService(store, nil)
		recs, err := service.RecommendLocal(ctx, *profile)
		if err != nil {
			return err
		}
		output["recommendations"] = recs
	} else {
		llmConfig := llm.DefaultConfig()
		if cfg.Model != "" {
			llmConfig = llmConfig.WithModel(llm.TierStandard, cfg.Model)
		}
		client, err := llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create analysis client: %w", err)
		}
		defer func() { _ = client.Close() }()

		service := recommend.NewService(store, analysis.NewAnalyzer(client))
		resp, err := service.Recommend(ctx, requestFromProfile(profile))
		if err != nil {
			return err
		}
		output["response"] = resp
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func readProfile(path string) (*types.StudentProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	var profile types.StudentProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

// requestFromProfile maps the questionnaire snapshot onto the server-path
// request shape the oracle flow expects.
func requestFromProfile(p *types.StudentProfile) *types.RecommendationRequest {
	return &types.RecommendationRequest{
		AcademicProfile: &types.AcademicProfile{
			CurrentStream:     p.Stream,
			TwelfthPercentage: parsing.ParsePercentage(p.Percentage),
			JEEMainsScore:     p.JEEMainsScore,
			JEEAdvancedScore:  p.JEEAdvancedScore,
			NEETScore:         p.NEETScore,
			CUETScore:         p.CUETScore,
		},
		Preferences: &types.Preferences{
			DesiredPrograms:     p.Interests,
			LocationPreferences: p.PreferredLocation,
		},
		Constraints: &types.Constraints{
			Locations: p.PreferredLocation,
			Budget:    budgetCeiling(p.BudgetRange),
		},
	}
}

// budgetCeiling converts a questionnaire budget band to the rupee ceiling the
// candidate filter compares annual fees against.
func budgetCeiling(budgetRange string) int {
	switch budgetRange {
	case "under-1lakh":
		return 100000
	case "1-3lakh":
		return 300000
	case "3-5lakh":
		return 500000
	case "5-10lakh":
		return 1000000
	default:
		// above-10lakh or unspecified: effectively unconstrained
		return 10000000
	}
}
