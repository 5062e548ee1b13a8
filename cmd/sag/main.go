package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"

	"github.com/siddug/sag/internal/app"
	"github.com/siddug/sag/internal/auth"
	"github.com/siddug/sag/internal/config"
	"github.com/siddug/sag/internal/logger"
	"github.com/siddug/sag/pkg/llm"
)

var version = "dev"

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DBPath, "SQLite database path")
	phrase := flag.String("phrase", cfg.AdminPhrase, "Admin phrase (auto-generated if not set)")
	logLevel := flag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `sag - party game host

Usage:
  sag [options]

Options:
  -addr string     HTTP listen address (default ":8080")
  -db string       SQLite database path (default "sag.db")
  -phrase string   Admin phrase (auto-generated if not set)
  -loglevel string Log level: debug, info, warn, error (default "info")
  -version         Show version and exit
  -help            Show this help message

Environment (flags take precedence):
  SAG_ADDR, SAG_DB_PATH, SAG_BASE_URL, SAG_AUTH_SECRET,
  SAG_ADMIN_PHRASE, SAG_LOG_LEVEL, SAG_POLL_INTERVAL_SECONDS

Examples:
  sag                          # Run on port 8080 with sag.db
  sag -addr :9000              # Run on port 9000
  sag -db /data/party.db       # Use custom database path
  sag -phrase disco-trivia-jackpot

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("sag %s\n", version)
		os.Exit(0)
	}

	cfg.Addr = *addr
	cfg.DBPath = *dbPath
	cfg.LogLevel = *logLevel

	adminPhrase := *phrase
	if adminPhrase == "" {
		adminPhrase = auth.GeneratePhrase()
	}
	secret := cfg.AuthSecret
	if secret == "" {
		// Sessions won't survive a restart without a configured secret
		buf := make([]byte, 32)
		rand.Read(buf)
		secret = hex.EncodeToString(buf)
	}

	adminAuth, err := auth.New(adminPhrase, secret, uuid.NewString())
	if err != nil {
		log.Fatal("Failed to initialize auth:", err)
	}

	appLog := logger.NewWithLevel(logger.ParseLevel(cfg.LogLevel))

	a, err := app.New(appLog, cfg, llm.NewHTTPClient(appLog), adminAuth)
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}
	defer a.Close()

	appLog.Info("Admin phrase", "phrase", adminPhrase)

	if err := a.Run(); err != nil {
		log.Fatal(err)
	}
}
