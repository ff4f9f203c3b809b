package main

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadp "timesheet-backend/internal/adapter/http"
	"timesheet-backend/internal/adapter/repository/gormrepo"
	"timesheet-backend/internal/infrastructure/cache"
	"timesheet-backend/internal/infrastructure/db"
	ucApproval "timesheet-backend/internal/usecase/approval"
	"timesheet-backend/internal/usecase/autosave"
	ucCrew "timesheet-backend/internal/usecase/crew"
	"timesheet-backend/internal/usecase/export"
	"timesheet-backend/internal/usecase/passwordreset"
	"timesheet-backend/internal/usecase/reference"
	"timesheet-backend/internal/usecase/submission"
	"timesheet-backend/internal/usecase/template"
)

// app owns the process-wide connections and usecases.
type app struct {
	db     *gorm.DB
	redis  *redis.Client
	drafts *autosave.Buffer

	handlers httpadp.Handlers
	exporter *export.Usecase
}

func openDB() (*gorm.DB, error) {
	gdb, err := db.OpenGorm(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", zap.String("driver", cfg.DBDriver))
	return gdb, nil
}

func newApp() (*app, error) {
	gdb, err := openDB()
	if err != nil {
		return nil, err
	}
	rdb, err := cache.Open(cfg)
	if err != nil {
		if sqlDB, derr := gdb.DB(); derr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	log.Info("redis connected", zap.String("addr", cfg.RedisAddr))

	templates := gormrepo.NewTemplateRepository(gdb)
	subs := gormrepo.NewSubmissionRepository(gdb)
	approvals := gormrepo.NewApprovalRepository(gdb)
	users := gormrepo.NewUserRepository(gdb)
	tags := gormrepo.NewTagRepository(gdb)
	codes := gormrepo.NewCostCodeRepository(gdb)
	sites := gormrepo.NewJobsiteRepository(gdb)
	equipment := gormrepo.NewEquipmentRepository(gdb)
	crews := gormrepo.NewCrewRepository(gdb)
	tx := gormrepo.NewGormUoW(gdb)

	catalog := reference.NewCatalog(users, sites, codes, equipment)
	approvalUC := ucApproval.NewUsecase(subs, approvals, tx, log.Named("approval"))
	submissionUC := submission.NewUsecase(templates, subs, tx, approvalUC, log.Named("submission"))
	exportUC := export.NewUsecase(templates, subs, users, log.Named("export"))
	drafts := autosave.New(submissionUC, cfg.AutosaveWindow(), log.Named("autosave"))
	// delivery belongs to the mail collaborator; until it is wired links are only recorded
	resetLinks := passwordreset.LogNotifier{Log: log.Named("resetlinks")}
	health := httpadp.NewHandler(
		httpadp.Check{Name: "db", Ping: pingDB(gdb)},
		httpadp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)

	return &app{
		db:       gdb,
		redis:    rdb,
		drafts:   drafts,
		exporter: exportUC,
		handlers: httpadp.Handlers{
			Health:      health,
			Forms:       httpadp.NewFormHandler(template.NewUsecase(templates, catalog, log.Named("template")), submissionUC, exportUC),
			Submissions: httpadp.NewSubmissionHandler(submissionUC, drafts),
			Approvals:   httpadp.NewApprovalHandler(approvalUC),
			Reference:   httpadp.NewReferenceHandler(reference.NewUsecase(tags, codes, sites, log.Named("reference"))),
			Crews:       httpadp.NewCrewHandler(ucCrew.NewUsecase(crews, users, log.Named("crew"))),
			Tokens:      httpadp.NewTokenHandler(passwordreset.NewUsecase(rdb, users, resetLinks, cfg.ResetTokenTTL(), log.Named("passwordreset"))),
		},
	}, nil
}

func pingDB(gdb *gorm.DB) func(context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}

// close flushes pending drafts before the connections go away.
func (a *app) close(ctx context.Context) {
	if err := a.drafts.Close(ctx); err != nil {
		log.Warn("autosave flush", zap.Error(err))
	}
	if err := a.redis.Close(); err != nil {
		log.Warn("redis close", zap.Error(err))
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
