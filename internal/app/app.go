package app

import (
	"github.com/danny20232023/hris-sub007/internal/config"
	"github.com/danny20232023/hris-sub007/internal/middleware"
	"github.com/danny20232023/hris-sub007/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every module on router. The returned
// cleanup closes the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database.Postgres(), cfg.Database.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Database.ConnectRetries)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	middleware.ConfigureAuth(cfg.JWT.Secret)
	router.Use(middleware.RequestID())

	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, logger); err != nil {
		rdb.Close()
		sqlDB.Close()
		return nil, err
	}

	return func() {
		rdb.Close()
		sqlDB.Close()
	}, nil
}
