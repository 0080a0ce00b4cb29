package main

import (
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"go-socialnet/internal/core/auth"
	"go-socialnet/internal/core/config"
	"go-socialnet/internal/core/database"
	"go-socialnet/internal/core/logger"
	"go-socialnet/internal/loader"
	"go-socialnet/internal/repo"
	"go-socialnet/internal/service"
)

// app holds what the subcommands share. It is built once per invocation.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	db      *gorm.DB
	svc     *service.Social
	loader  *loader.Loader
	cleanup func()
}

func openApp(cfgPath string, out io.Writer) (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	opts := logger.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON, Console: zapcore.Lock(os.Stderr)}
	if cfg.Log.File.Enable {
		name := cfg.Log.File.Filename
		if name == "" {
			name = logger.DailyFilename(cfg.Log.File.Dir, time.Now())
		}
		opts.Rotate = logger.FileRotate{
			Enable:     true,
			Filename:   name,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		}
	}
	log, logCleanup := logger.Build(opts)
	undoGlobals := zap.ReplaceGlobals(log)

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                logger.ToStdLogger(log.Named("gorm"), zapcore.WarnLevel),
	})
	if err != nil {
		undoGlobals()
		logCleanup()
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			_ = database.Close(db)
			undoGlobals()
			logCleanup()
			return nil, err
		}
	}

	store := repo.NewStore(db)
	return &app{
		cfg:    cfg,
		log:    log,
		db:     db,
		svc:    service.NewSocial(store, log),
		loader: loader.New(store, log, out),
		cleanup: func() {
			_ = database.Close(db)
			undoGlobals()
			logCleanup()
		},
	}, nil
}

func (a *app) jwter() *auth.JWTer {
	return &auth.JWTer{
		Secret: []byte(a.cfg.JWT.Secret),
		Issuer: a.cfg.JWT.Issuer,
		TTL:    time.Duration(a.cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
}
