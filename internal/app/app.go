package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/smartagro/smartagro/config"
	"github.com/smartagro/smartagro/internal/catalog"
	"github.com/smartagro/smartagro/internal/domain"
	"github.com/smartagro/smartagro/internal/router"
	"github.com/smartagro/smartagro/internal/views"
)

type Application struct {
	appConfig *config.AppConfig
	gormDB    *gorm.DB
	reader    catalog.Reader
	table     *router.Table
	renderer  *views.Renderer
	sched     *cron.Cron
	loc       *time.Location
	now       func() time.Time
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ ReaderProvider    = (*Application)(nil)
	_ RouterProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig, loc: time.Local, now: time.Now}
}

// localNow is the current time in the configured location
func (a *Application) localNow() time.Time {
	return a.now().In(a.loc)
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) DB() *gorm.DB {
	return a.gormDB
}

func (a *Application) Reader() catalog.Reader {
	return a.reader
}

func (a *Application) Routes() *router.Table {
	return a.table
}

func (a *Application) Renderer() *views.Renderer {
	return a.renderer
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// Init prepares the data store, route table, renderer and scheduled jobs.
// The logger is set up separately by InitLogger.
func (a *Application) Init() error {
	cfg := a.appConfig
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Errorf("timezone config error: %v", err)
		loc = time.Local
	}
	a.loc = loc

	if cfg.Database.Type == "memory" {
		store, err := catalog.NewStore(catalog.Fixtures())
		if err != nil {
			return err
		}
		a.reader = store
		zap.S().Info("Using in-memory data store")
	} else {
		a.gormDB, err = getDatabase(cfg.Database, cfg.GetDataDir())
		if err != nil {
			return err
		}
		zap.S().Infof("Database connection successful, type: %s", cfg.Database.Type)
		if err := a.MigrateDB(false); err != nil {
			return err
		}
		repo := catalog.NewGormRepository(a.gormDB, catalog.LogoAsset)
		if err := a.checkCatalog(context.Background(), repo); err != nil {
			return err
		}
		a.reader = repo
	}

	a.table = router.Default()
	a.renderer, err = views.NewRenderer(a.table, a.reader,
		views.WithAssetBaseURL(cfg.Web.AssetBaseURL),
		views.WithClock(a.localNow))
	if err != nil {
		return errors.Wrap(err, "view registry")
	}

	return a.initJob(loc)
}

// InitLogger installs the global zap logger described by cfg
func InitLogger(cfg *config.AppConfig) error {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var (
		log *zap.Logger
		err error
	)
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		log = zap.New(core, zap.AddCaller())
	} else {
		log, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return err
		}
	}

	zap.ReplaceGlobals(log)
	return nil
}

func getDatabase(cfg config.DBConfig, dataDir string) (*gorm.DB, error) {
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if cfg.Debug {
		gcfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var (
		dialector gorm.Dialector
		memory    bool
	)
	switch cfg.Type {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		dialector = postgres.Open(dsn)
	case "sqlite":
		path := cfg.Name
		if path == ":memory:" {
			memory = true
		} else {
			if !filepath.IsAbs(path) {
				path = filepath.Join(dataDir, path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, errors.Wrap(err, "create data dir")
			}
		}
		dialector = sqlite.Open(path)
	default:
		return nil, errors.Errorf("unsupported database type %q", cfg.Type)
	}

	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s database", cfg.Type)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if memory {
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	return db, nil
}

func (a *Application) MigrateDB(track bool) error {
	if a.gormDB == nil {
		return nil
	}
	db := a.gormDB
	if track {
		db = db.Debug()
	}
	if err := db.Migrator().AutoMigrate(domain.Tables...); err != nil {
		return errors.Wrap(err, "migrate database")
	}
	return nil
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		<-a.sched.Stop().Done()
	}
	if a.gormDB != nil {
		if sqlDB, err := a.gormDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	_ = zap.L().Sync()
}
