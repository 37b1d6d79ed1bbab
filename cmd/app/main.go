package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"fooddelivery/cmd"
	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/postgres/menurepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/paymentrepo"
	"fooddelivery/internal/adapters/out/postgres/userrepo"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	root, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building composition root: %v", err)
	}

	seedAdmin(root, configs, logger)

	jobManager := jobs.NewJobManager(root.CreateReconcilePaymentsCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(root, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:      goDotEnvVariable("HTTP_PORT"),
		DBHost:        goDotEnvVariable("DB_HOST"),
		DBPort:        goDotEnvVariable("DB_PORT"),
		DBUser:        goDotEnvVariable("DB_USER"),
		DBPassword:    goDotEnvVariable("DB_PASSWORD"),
		DBName:        goDotEnvVariable("DB_NAME"),
		DBSslMode:     goDotEnvVariable("DB_SSLMODE"),
		JWTSecret:     goDotEnvVariable("JWT_SECRET"),
		TokenTTL:      goDotEnvVariable("TOKEN_TTL"),
		AdminUsername: goDotEnvVariable("ADMIN_USERNAME"),
		AdminPassword: goDotEnvVariable("ADMIN_PASSWORD"),
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

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError maps driver duplicate-key failures onto
	// gorm.ErrDuplicatedKey, which the repositories rely on.
	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&userrepo.UserDTO{},
		&menurepo.MenuItemDTO{},
		&orderrepo.OrderDTO{},
		&paymentrepo.PaymentDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

// seedAdmin creates the bootstrap admin account on first start.
// An existing account with the same username is left untouched.
func seedAdmin(root *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	username := configs.AdminUsername
	password := configs.AdminPassword
	if username == "" || password == "" {
		return
	}

	registerCmd, err := commands.NewRegisterUserCommand(
		kernel.NewUUID(), username, "admin@localhost", password, user.RoleAdmin,
	)
	if err != nil {
		log.Fatalf("Error building admin seed command: %v", err)
	}

	handler := root.CreateRegisterUserCommandHandler()
	if err := handler.Handle(context.Background(), registerCmd); err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			return
		}
		log.Fatalf("Error seeding admin user: %v", err)
	}

	logger.Info("Admin user seeded", "username", username)
}

func startWebServer(root *cmd.CompositionRoot, port string) {
	server, err := httpadapter.NewServer(
		root.CreateRegisterUserCommandHandler(),
		root.CreateCreateMenuItemCommandHandler(),
		root.CreateUpdateMenuItemCommandHandler(),
		root.CreateDeleteMenuItemCommandHandler(),
		root.CreateCreateOrderCommandHandler(),
		root.CreateUpdateOrderStatusCommandHandler(),
		root.CreateCreatePaymentCommandHandler(),
		root.CreateGetMenuItemsQueryHandler(),
		root.CreateGetOrdersQueryHandler(),
		root.CreateGetOrderQueryHandler(),
		root.CreateGetPaymentQueryHandler(),
		root.TokenService(),
		root.UserFinder(),
		root.Registry(),
	)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	e := echo.New()
	e.Validator = httpadapter.NewRequestValidator()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
