package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	api "github.com/plateful-app/plateful-backend/api"
	"github.com/plateful-app/plateful-backend/database"
	"github.com/plateful-app/plateful-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "plateful"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_NAME", "plateful"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_SSLMODE", "disable"),
		)
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}

	// Test database connection
	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		fmt.Printf("Error testing database connection: %v\n", err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		fmt.Printf("Error migrating database schema: %v\n", err)
		os.Exit(1)
	}

	currentDB := database.New(db)

	// If seed files are configured, load them and exit
	if seeded := runSeeds(currentDB); seeded {
		return
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(currentDB)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// runSeeds loads the ingredient and tag catalogs from CSV files when the
// corresponding environment variables are set. Returns true when any seed
// ran, in which case the process should exit instead of serving.
func runSeeds(db database.Database) bool {
	seeded := false

	if path := os.Getenv("SEED_INGREDIENTS_FILE"); path != "" {
		fmt.Printf("Seeding ingredients from %s...\n", path)
		count, err := services.LoadIngredients(path, db.IngredientRepo())
		if err != nil {
			fmt.Printf("Error seeding ingredients: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %d ingredients\n", count)
		seeded = true
	}

	if path := os.Getenv("SEED_TAGS_FILE"); path != "" {
		fmt.Printf("Seeding tags from %s...\n", path)
		count, err := services.LoadTags(path, db.TagRepo())
		if err != nil {
			fmt.Printf("Error seeding tags: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded %d tags\n", count)
		seeded = true
	}

	return seeded
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
