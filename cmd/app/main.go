package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"laundry/cmd"
	httpadapter "laundry/internal/adapters/in/http"
	"laundry/internal/adapters/out/postgres"
	"laundry/internal/adapters/out/postgres/issuerepo"
	"laundry/internal/adapters/out/postgres/orderrepo"
	"laundry/internal/adapters/out/postgres/tenantguard"
	"laundry/internal/adapters/out/postgres/workflowrepo"
	redisadapter "laundry/internal/adapters/out/redis"
	"laundry/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)

	guardMode := tenantguard.Hardened
	if configs.IsDevelopment() {
		guardMode = tenantguard.Relaxed
	}
	guard := tenantguard.NewGuard(guardMode, logger)

	redisClient, err := redisadapter.NewClient(context.Background(), configs.RedisURL)
	if err != nil {
		log.Fatalf("Error connecting to redis: %v", err)
	}
	publisher := redisadapter.NewEventPublisher(redisClient, logger)

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB, guard)
	app := cmd.NewCompositionRoot(configs, gormDB, uowFactory, publisher)

	jobManager := jobs.NewJobManager(
		postgres.NewGormTenantProvider(gormDB),
		uowFactory,
		publisher,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		AppEnv:       goDotEnvVariable("APP_ENV"),
		HTTPPort:     goDotEnvVariable("HTTP_PORT"),
		DBHost:       goDotEnvVariable("DB_HOST"),
		DBPort:       goDotEnvVariable("DB_PORT"),
		DBUser:       goDotEnvVariable("DB_USER"),
		DBPassword:   goDotEnvVariable("DB_PASSWORD"),
		DBName:       goDotEnvVariable("DB_NAME"),
		DBSslMode:    goDotEnvVariable("DB_SSLMODE"),
		RedisURL:     goDotEnvVariable("REDIS_URL"),
		JWTSecret:    goDotEnvVariable("JWT_SECRET"),
		QueryTimeout: queryTimeout(),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func queryTimeout() time.Duration {
	raw := goDotEnvVariable("QUERY_TIMEOUT_MS")
	if raw == "" {
		return 0 // query handlers fall back to their default ceiling
	}
	ms, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Error parsing QUERY_TIMEOUT_MS: %v", err)
	}
	return time.Duration(ms) * time.Millisecond
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ItemDTO{},
		&orderrepo.PieceDTO{},
		&orderrepo.StepDTO{},
		&orderrepo.HistoryDTO{},
		&orderrepo.NumberSequenceDTO{},
		&workflowrepo.WorkflowDTO{},
		&issuerepo.IssueDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateSplitOrderCommandHandler(),
		app.CreateCreateIssueCommandHandler(),
		app.CreateResolveIssueCommandHandler(),
		app.CreateRecordProcessingStepCommandHandler(),
		app.CreateUpdatePiecesCommandHandler(),
		app.CreateConfigureWorkflowCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateListActiveOrdersQueryHandler(),
	)
	server.RegisterRoutes(e, []byte(configs.JWTSecret))

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
