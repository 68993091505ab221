package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/prairiesport/association-backend/internal/auditlog"
	auditlogHttp "github.com/prairiesport/association-backend/internal/auditlog/http"
	"github.com/prairiesport/association-backend/internal/auth"
	"github.com/prairiesport/association-backend/internal/booking"
	bookingHttp "github.com/prairiesport/association-backend/internal/booking/http"
	"github.com/prairiesport/association-backend/internal/club"
	clubHttp "github.com/prairiesport/association-backend/internal/club/http"
	"github.com/prairiesport/association-backend/internal/expense"
	expenseHttp "github.com/prairiesport/association-backend/internal/expense/http"
	"github.com/prairiesport/association-backend/internal/invoice"
	invoiceHttp "github.com/prairiesport/association-backend/internal/invoice/http"
	"github.com/prairiesport/association-backend/internal/member"
	memberHttp "github.com/prairiesport/association-backend/internal/member/http"
	"github.com/prairiesport/association-backend/internal/payment"
	paymentHttp "github.com/prairiesport/association-backend/internal/payment/http"
	"github.com/prairiesport/association-backend/internal/staff"
	staffHttp "github.com/prairiesport/association-backend/internal/staff/http"
)

// Config carries the services the router exposes.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated

	BookingService  booking.Service
	InvoiceService  invoice.Service
	PaymentService  payment.Service
	MemberService   member.Service
	ClubService     club.Service
	ExpenseService  expense.Service
	AuditLogService auditlog.Service
	StaffService    staff.Service

	JWTManager *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for all
// modules under /v1.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // local site
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Stripe-Signature"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)

	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.AuditLogService)
	invoiceHandler := invoiceHttp.NewHandler(cfg.InvoiceService, cfg.AuditLogService)
	paymentHandler := paymentHttp.NewHandler(cfg.PaymentService)
	memberHandler := memberHttp.NewHandler(cfg.MemberService, cfg.AuditLogService)
	clubHandler := clubHttp.NewHandler(cfg.ClubService)
	expenseHandler := expenseHttp.NewHandler(cfg.ExpenseService)
	auditlogHandler := auditlogHttp.NewHandler(cfg.AuditLogService)
	staffHandler := staffHttp.NewHandler(cfg.StaffService, cfg.JWTManager)

	v1 := r.Group("/v1")
	{
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware)
		invoiceHttp.RegisterRoutes(v1, invoiceHandler, authMiddleware)
		paymentHttp.RegisterRoutes(v1, paymentHandler)
		memberHttp.RegisterRoutes(v1, memberHandler, authMiddleware)
		clubHttp.RegisterRoutes(v1, clubHandler, authMiddleware)
		expenseHttp.RegisterRoutes(v1, expenseHandler, authMiddleware)
		auditlogHttp.RegisterRoutes(v1, auditlogHandler, authMiddleware)
		staffHttp.RegisterRoutes(v1, staffHandler, authMiddleware)
	}

	return r
}
