package app

import (
	"database/sql"

	"github.com/danny20232023/hris-sub007/internal/availability"
	"github.com/danny20232023/hris-sub007/internal/config"
	"github.com/danny20232023/hris-sub007/internal/credit"
	"github.com/danny20232023/hris-sub007/internal/employee"
	"github.com/danny20232023/hris-sub007/internal/leave"
	"github.com/danny20232023/hris-sub007/internal/leavetype"
	"github.com/danny20232023/hris-sub007/internal/messaging/kafka"
	"github.com/danny20232023/hris-sub007/internal/rbac"
	"github.com/danny20232023/hris-sub007/internal/rbac/infra"
	"github.com/danny20232023/hris-sub007/internal/shared/counter"
	"github.com/danny20232023/hris-sub007/internal/travel"
	"github.com/danny20232023/hris-sub007/internal/validation"
	"github.com/danny20232023/hris-sub007/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	creditRepo := credit.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	availabilityRepo := availability.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	travelRepo := travel.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBAC.ModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Validation core ---
	ledger := credit.NewLedger(creditRepo)
	resolver := availability.NewResolver(availabilityRepo)
	validator := validation.NewOrchestrator(ledger, resolver)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo, rdb)
	creditService := credit.NewService(db, creditRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb)
	availabilityService := availability.NewService(resolver)
	leaveService := leave.NewService(db, leaveRepo, leave.Dependencies{
		Validator:   validator,
		Ledger:      ledger,
		LeaveTypes:  leaveTypeService,
		Permissions: rbacService,
		Outbox:      outboxRepo,
		Policy:      workflow.Policy{RestoreCreditOnCancel: cfg.Leave.RestoreCredit()},
	})
	travelService := travel.NewService(db, travelRepo, travel.Dependencies{
		Validator:   validator,
		Counter:     counterRepo,
		Permissions: rbacService,
		Outbox:      outboxRepo,
	})

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	creditHandler := credit.NewHandler(creditService)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	availabilityHandler := availability.NewHandler(availabilityService)
	leaveHandler := leave.NewHandler(leaveService)
	travelHandler := travel.NewHandler(travelService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, logger)
		credit.RegisterRoutes(api, creditHandler, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, rbacService)
		availability.RegisterRoutes(api, availabilityHandler, rbacService)
		leave.RegisterRoutes(api, leaveHandler, rbacService, rdb, logger)
		travel.RegisterRoutes(api, travelHandler, rbacService, rdb, logger)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
