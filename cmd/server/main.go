package main

import (
	"context"
	"crypto/rand"
	"flag"
	"fmt"
	"math/big"
	"net/http"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/crypto/bcrypt"

	"github.com/mlakar/zaloga/internal/api"
	"github.com/mlakar/zaloga/internal/db"
	"github.com/mlakar/zaloga/internal/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: zaloga <init|serve>")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		cmdInit(os.Args[2:])
	case "serve":
		cmdServe(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\nUsage: zaloga <init|serve>\n", os.Args[1])
		os.Exit(1)
	}
}

func cmdInit(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	dbPath := fs.String("db", "zaloga.sqlite3", "path to SQLite database file")
	tenantID := fs.String("tenant", "tenant1", "identifier of the first tenant")
	tenantName := fs.String("tenant-name", "Default Tenant", "display name of the first tenant")
	fs.Parse(args)

	if _, err := os.Stat(*dbPath); err == nil {
		fmt.Fprintf(os.Stderr, "Error: database file %s already exists\n", *dbPath)
		os.Exit(1)
	}

	password, err := initDatabase(*dbPath, *tenantID, *tenantName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printInitSummary(*dbPath, *tenantID, password)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	dbPath := fs.String("db", "zaloga.sqlite3", "path to SQLite database file")
	addr := fs.String("addr", ":8080", "listen address")
	jwtSecret := fs.String("jwt-secret", "", "JWT signing key (auto-generated if empty)")
	logLevel := fs.String("log-level", "info", "log level (debug, info, warn, error)")
	logFormat := fs.String("log-format", "json", "log format (json or console)")
	tenantID := fs.String("tenant", "tenant1", "identifier of the first tenant (used on auto-init)")
	tenantName := fs.String("tenant-name", "Default Tenant", "display name of the first tenant (used on auto-init)")
	fs.Parse(args)

	logger, err := newLogger(*logLevel, *logFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *jwtSecret == "" {
		secret, err := generatePassword(32)
		if err != nil {
			logger.Fatal("failed to generate JWT secret", zap.Error(err))
		}
		*jwtSecret = secret
		logger.Warn("JWT secret auto-generated, tokens will be invalidated on restart")
	}

	// Auto-init on first run.
	if _, err := os.Stat(*dbPath); os.IsNotExist(err) {
		password, err := initDatabase(*dbPath, *tenantID, *tenantName)
		if err != nil {
			logger.Fatal("failed to initialize database", zap.Error(err))
		}
		printInitSummary(*dbPath, *tenantID, password)
	}

	database, err := db.Open(*dbPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	router := api.NewRouter(database, *jwtSecret, logger)
	handler := api.LoggingMiddleware(logger)(router)

	logger.Info("server listening", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, handler); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newLogger builds a zap logger from the level and format flags.
func newLogger(level, format string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var config zap.Config
	if format == "console" {
		config = zap.NewDevelopmentConfig()
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.TimeKey = "timestamp"
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	config.Level = lvl

	return config.Build()
}

// initDatabase creates a new database, runs migrations, and seeds the first
// tenant with an admin account. Returns the generated admin password.
func initDatabase(path, tenantID, tenantName string) (string, error) {
	database, err := db.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	fail := func(err error) (string, error) {
		os.Remove(path)
		return "", err
	}

	if err := db.Migrate(database); err != nil {
		return fail(fmt.Errorf("running migrations: %w", err))
	}

	ctx := context.Background()
	if _, err := store.CreateTenant(ctx, database, tenantID, tenantName); err != nil {
		return fail(fmt.Errorf("creating tenant: %w", err))
	}

	password, err := generatePassword(16)
	if err != nil {
		return fail(fmt.Errorf("generating password: %w", err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fail(fmt.Errorf("hashing password: %w", err))
	}

	if _, err := store.CreateUser(ctx, database, tenantID, "admin", string(hash), "admin"); err != nil {
		return fail(fmt.Errorf("creating admin user: %w", err))
	}

	return password, nil
}

func printInitSummary(dbPath, tenantID, password string) {
	fmt.Printf("Database created: %s\n", dbPath)
	fmt.Printf("Tenant created: %s\n", tenantID)
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Printf("  Username: admin\n")
	fmt.Printf("  Password: %s\n", password)
	fmt.Println()
	fmt.Println("Save this password, it cannot be recovered.")
	fmt.Println("The admin can change it after logging in.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
