package main

import (
	"flag"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"selectly/internal/analyzer"
	"selectly/internal/config"
	"selectly/internal/domain"
	"selectly/internal/enrich/gemini"
	"selectly/internal/logging"
	"selectly/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var cfgPath string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/selectly/config.yaml if not provided)")
	flag.Parse()
	csvPath := ""
	if args := flag.Args(); len(args) > 0 {
		csvPath = args[0]
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, logFile, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatalf("failed to open log file: %v", err)
	}
	defer logFile.Close()

	// Enrichment is optional: no key in the environment just means the
	// shortlist ships without AI commentary.
	var enricher domain.Enricher
	if os.Getenv(cfg.Enrichment.APIKeyEnv) != "" {
		client, err := gemini.NewClient(gemini.Config{
			BaseURL:   cfg.Enrichment.BaseURL,
			APIKeyEnv: cfg.Enrichment.APIKeyEnv,
			Model:     cfg.Enrichment.Model,
			Timeout:   time.Duration(cfg.Enrichment.TimeoutSecs) * time.Second,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("enrichment client init failed, continuing without it")
		} else {
			enricher = client
		}
	} else {
		logger.Info().Str("env", cfg.Enrichment.APIKeyEnv).Msg("no API key set, enrichment disabled")
	}

	session := analyzer.NewSession(enricher, logger)
	if csvPath != "" {
		if err := session.LoadCSV(csvPath); err != nil {
			log.Fatalf("failed to load %s: %v", csvPath, err)
		}
	}

	m := tui.New(session)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
