package app

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-payroll/internal/attendance"
	"go-payroll/internal/employee"
	"go-payroll/internal/mailer"
	"go-payroll/internal/messaging/kafka"
	"go-payroll/internal/payroll"
	"go-payroll/internal/payslip"
	"go-payroll/internal/rbac"
	"go-payroll/internal/rbac/infra"
	"go-payroll/internal/settings"
	"go-payroll/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	payrollRepo := payroll.NewRepository(gormDB)
	payslipRepo := payslip.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	attendanceService := attendance.NewServiceWithOutbox(db, attendanceRepo, employeeRepo, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo)
	settingsService := settings.NewService(settingsRepo)
	payslipService := payslip.NewService(payslipDeps(db, payslipRepo, employeeRepo, payrollRepo, counterRepo, outboxRepo, settingsService))

	// --- Handlers ---
	attendanceHandler := attendance.NewHandler(attendanceService)
	payrollHandler := payroll.NewHandlerWithRedis(payrollService, rdb)
	payslipHandler := payslip.NewHandlerWithRedis(payslipService, rdb)
	settingsHandler := settings.NewHandler(settingsService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		attendance.RegisterRoutes(api, attendanceHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		payslip.RegisterRoutes(api, payslipHandler, rbacService, rdb)
		settings.RegisterRoutes(api, settingsHandler, rbacService)
	}

	return nil
}

func payslipDeps(
	db *sql.DB,
	repo payslip.Repository,
	employees employee.Repository,
	lineItems payroll.Repository,
	counters counter.Repository,
	outbox kafka.OutboxRepository,
	settingsService settings.Service,
) payslip.Deps {
	storageRoot := os.Getenv("PAYSLIP_STORAGE_DIR")
	if storageRoot == "" {
		storageRoot = filepath.Join("storage", "payslips")
	}
	workDir := os.Getenv("PAYSLIP_TMP_DIR")
	if workDir == "" {
		workDir = os.TempDir()
	}

	console := mailer.NewConsole(zap.L())
	var sendgrid mailer.Mailer
	if key := os.Getenv("SENDGRID_API_KEY"); key != "" {
		sendgrid = mailer.NewSendGrid(key)
	}

	return payslip.Deps{
		DB:        db,
		Repo:      repo,
		Employees: employees,
		LineItems: lineItems,
		Counters:  counters,
		Store:     payslip.NewFilesystemStore(storageRoot),
		Encryptor: payslip.NewQPDFEncryptor(workDir),
		Outbox:    outbox,
		Mail:      payslip.NewMailDispatcher(settingsService, sendgrid, console),
	}
}
