package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/garmentflow/backend/internal/infrastructure/config"
	"github.com/garmentflow/backend/internal/infrastructure/logger"
	"github.com/garmentflow/backend/internal/infrastructure/persistence"
	"github.com/garmentflow/backend/internal/infrastructure/persistence/models"
)

func main() {
	var (
		dev      bool
		devPath  string
		logLevel string
	)

	flag.BoolVar(&dev, "dev", false, "Migrate a local SQLite database instead of Postgres")
	flag.StringVar(&devPath, "dev-path", "garmentflow.db", "SQLite database file used with -dev")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stdout",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, target, err := openDatabase(cfg, dev, devPath, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Running schema migration", zap.String("target", target))

	if err := db.AutoMigrate(
		&models.ReconciliationRecordModel{},
		&models.SettlementBatchModel{},
		&models.SettlementItemModel{},
		&models.PaymentRequestModel{},
		&models.ExpenseReimbursementModel{},
		&models.ScanEventModel{},
		&models.ProductionOrderModel{},
		&models.MaterialPurchaseModel{},
	); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration completed")
}

// openDatabase connects to Postgres from the loaded configuration, or to a
// local SQLite file when -dev is set.
func openDatabase(cfg *config.Config, dev bool, devPath string, log *zap.Logger) (*gorm.DB, string, error) {
	if dev {
		gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
		db, err := gorm.Open(sqlite.Open(devPath), &gorm.Config{
			Logger:         gormLog,
			TranslateError: true,
		})
		if err != nil {
			return nil, "", err
		}
		return db, "sqlite:" + devPath, nil
	}

	database, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormlogger.Info)
	if err != nil {
		return nil, "", err
	}
	target := fmt.Sprintf("postgres://%s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	return database.DB, target, nil
}
