package main

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/stockquest/api-server/internals/ledger"
	"github.com/stockquest/api-server/internals/market"
	"github.com/stockquest/api-server/internals/scoring"
	"github.com/stockquest/api-server/pkg/kvstore"
)

func failOnError(err error, msg string) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}

func (app *App) initDB() (*gorm.DB, error) {
	dsn := app.Cfg.GetString("db.dsn")
	// TranslateError maps the pg unique-violation onto gorm.ErrDuplicatedKey,
	// which the ledger relies on for idempotent submissions.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func (app *App) initKVStore() {
	// initialize redis
	app.KVStore = kvstore.NewRedis(app.Cfg.GetString("redis.addr"), "", 0)
}

func (app *App) initServices() {
	app.Market = market.New(
		app.KVStore,
		app.Cfg.GetString("market.base_url"),
		app.Cfg.GetString("market.api_key"),
		time.Duration(app.Cfg.GetInt("market.timeout_seconds"))*time.Second,
		time.Duration(app.Cfg.GetInt("market.cache_ttl_seconds"))*time.Second,
		time.Duration(app.Cfg.GetInt("market.news_cache_ttl_seconds"))*time.Second,
		app.Log,
	)
	app.Ledger = ledger.New(app.KVStore, ledger.NewGormStore(app.DB))
	app.Scoring = scoring.New(app.DB, app.KVStore, app.Log)
}
