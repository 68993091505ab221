package app

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prairiesport/association-backend/internal/api"
	"github.com/prairiesport/association-backend/internal/auditlog"
	"github.com/prairiesport/association-backend/internal/auth"
	"github.com/prairiesport/association-backend/internal/booking"
	"github.com/prairiesport/association-backend/internal/calendar"
	"github.com/prairiesport/association-backend/internal/club"
	"github.com/prairiesport/association-backend/internal/config"
	"github.com/prairiesport/association-backend/internal/expense"
	"github.com/prairiesport/association-backend/internal/invoice"
	"github.com/prairiesport/association-backend/internal/member"
	"github.com/prairiesport/association-backend/internal/notify"
	"github.com/prairiesport/association-backend/internal/payment"
	"github.com/prairiesport/association-backend/internal/pkg/storage"
	"github.com/prairiesport/association-backend/internal/staff"
)

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg *config.Config, pool *pgxpool.Pool) (*Container, error) {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTokenTTL)

	// External calendar. Optional: bookings proceed without sync when the
	// service account is not configured.
	var cal booking.Calendar
	if cfg.CalendarID != "" && cfg.ServiceAccountEmail != "" && cfg.ServiceAccountKey != "" {
		client, err := calendar.New(calendar.Config{
			CalendarID:          cfg.CalendarID,
			ServiceAccountEmail: cfg.ServiceAccountEmail,
			PrivateKeyPEM:       cfg.ServiceAccountKey,
			Timezone:            cfg.CalendarTimezone,
		})
		if err != nil {
			return nil, err
		}
		cal = client
	} else {
		log.Println("calendar sync disabled: service account not configured")
	}

	// Notification sender. Without an API key notifications are logged only.
	var sender notify.Sender
	if cfg.ResendAPIKey != "" {
		sender = notify.NewResendSender(cfg.ResendAPIKey, cfg.NotifyFromEmail)
	}

	// Booking Module
	bookingRepo := booking.NewPgxRepository(pool)
	bookingService := booking.NewService(bookingRepo, cal, sender, cfg.AdminEmail, cfg.CoachEmail)

	// Invoice Module. Archiving is optional.
	var archive storage.Storage
	if cfg.InvoiceArchiveDir != "" {
		local, err := storage.NewLocalStorage(cfg.InvoiceArchiveDir)
		if err != nil {
			return nil, err
		}
		archive = local
	}
	invoiceService := invoice.NewService(bookingRepo, archive)

	// Member Module
	memberRepo := member.NewPgxRepository(pool)
	memberService := member.NewService(memberRepo)

	// Payment Module
	eventRepo := payment.NewPgxEventRepository(pool)
	paymentService := payment.NewService(eventRepo, memberService, payment.Config{
		SecretKey:     cfg.StripeSecretKey,
		WebhookSecret: cfg.StripeWebhookSecret,
		SuccessURL:    cfg.CheckoutSuccessURL,
		CancelURL:     cfg.CheckoutCancelURL,
	})

	// Club Module
	clubRepo := club.NewPgxRepository(pool)
	clubService := club.NewService(clubRepo)

	// Expense Module
	expenseRepo := expense.NewPgxRepository(pool)
	expenseService := expense.NewService(expenseRepo)

	// Audit Log Module
	auditRepo := auditlog.NewPgxRepository(pool)
	auditService := auditlog.NewService(auditRepo)

	// Staff Module
	staffRepo := staff.NewPgxRepository(pool)
	staffService := staff.NewService(staffRepo, passwordHasher)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		BookingService:  bookingService,
		InvoiceService:  invoiceService,
		PaymentService:  paymentService,
		MemberService:   memberService,
		ClubService:     clubService,
		ExpenseService:  expenseService,
		AuditLogService: auditService,
		StaffService:    staffService,
		JWTManager:      jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
