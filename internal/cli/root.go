package cli

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwarren/crmapi/internal/core/repository"
	"github.com/mwarren/crmapi/internal/core/service"
	"github.com/mwarren/crmapi/internal/core/validation"
	"github.com/mwarren/crmapi/internal/infrastructure/sqlite"
	"github.com/mwarren/crmapi/internal/loops"
	"github.com/mwarren/crmapi/pkg/config"
	"github.com/mwarren/crmapi/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "crmapi",
	Short: "CRM API - client relationship management backend",
	Long: `CRM API is a small client relationship management backend.

It provides:
- A REST resource for client records with search, sort and pagination
- Field-level payload validation
- Best-effort contact sync to the Loops.so email-marketing API`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}

		// .env is optional; it only matters for local development.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
}

// Services holds all initialized dependencies
type Services struct {
	DB            *sqlite.DB
	Logger        *zap.Logger
	ClientRepo    repository.ClientRepository
	ClientService *service.ClientService
}

// initServices initializes the database, logger and services
func initServices() (*Services, error) {
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	clientRepo := sqlite.NewClientRepository(db)
	loopsClient := loops.NewClient(cfg.Loops, log)
	clientService := service.NewClientService(clientRepo, validation.NewClientValidator(), loopsClient, log)

	return &Services{
		DB:            db,
		Logger:        log,
		ClientRepo:    clientRepo,
		ClientService: clientService,
	}, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.Logger != nil {
		_ = s.Logger.Sync()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
