package main

import (
	"database/sql"
	"log"
	"time"

	"firebase.google.com/go/messaging"
	"github.com/redis/go-redis/v9"

	"aquaBack/internal/config"
	"aquaBack/internal/handlers"
	"aquaBack/internal/notify"
	"aquaBack/internal/repositories"
	"aquaBack/internal/services"
	"aquaBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	cfg      config.Config
	db       *sql.DB
	location *time.Location

	tokenManager *utils.Manager

	userRepo     *repositories.UserRepository
	businessRepo *repositories.BusinessRepository

	wageService    *services.WageService
	billingService *services.BillingService

	authHandler     *handlers.AuthHandler
	userHandler     *handlers.UserHandler
	businessHandler *handlers.BusinessHandler
	customerHandler *handlers.CustomerHandler
	bookingHandler  *handlers.BookingHandler
	deliveryHandler *handlers.DeliveryHandler
	reportHandler   *handlers.ReportHandler
	billingHandler  *handlers.BillingHandler
	invoiceHandler  *handlers.InvoiceHandler
	salesHandler    *handlers.SalesHandler
	supplierHandler *handlers.SupplierHandler
}

func initializeApp(cfg config.Config, db *sql.DB, redisClient *redis.Client, fcmClient *messaging.Client, errorLog, infoLog *log.Logger) (*application, error) {
	loc, err := time.LoadLocation(cfg.Wages.Timezone)
	if err != nil {
		errorLog.Printf("load location %s: %v", cfg.Wages.Timezone, err)
		loc = time.FixedZone(cfg.Wages.Timezone, int(5.5*60*60))
	}

	tokenManager, err := utils.NewManager(cfg.Auth.SigningKey,
		time.Duration(cfg.Auth.AccessTTLMins)*time.Minute,
		time.Duration(cfg.Auth.RefreshTTLHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	storage, err := utils.NewStorage(cfg.Storage.AccessKey, cfg.Storage.SecretKey,
		cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint,
		"https://"+cfg.Storage.Bucket+".object.pscloud.io")
	if err != nil {
		return nil, err
	}

	// Repositories
	userRepo := &repositories.UserRepository{DB: db}
	businessRepo := &repositories.BusinessRepository{DB: db}
	customerRepo := &repositories.CustomerRepository{DB: db}
	bookingRepo := &repositories.BookingRepository{DB: db, Business: businessRepo}
	logRepo := &repositories.DailyLogRepository{DB: db}
	requestRepo := &repositories.JarRequestRepository{DB: db, Logs: logRepo}
	expenseRepo := &repositories.ExpenseRepository{DB: db}
	wageRepo := &repositories.WageRepository{DB: db}
	invoiceRepo := &repositories.InvoiceRepository{DB: db}
	subscriptionRepo := &repositories.SubscriptionRepository{DB: db}
	saleRepo := &repositories.ProductSaleRepository{DB: db}
	supplierRepo := &repositories.SupplierRepository{DB: db}

	// Notifications
	var notifier notify.Notifier = notify.NopNotifier{}
	if fcmClient != nil {
		notifier = &notify.FCMNotifier{
			Client:      fcmClient,
			ErrorLog:    errorLog,
			InfoLog:     infoLog,
			DeleteToken: userRepo.DeleteDeviceToken,
		}
	}

	// Services
	invoiceService := &services.InvoiceService{
		Invoices:  invoiceRepo,
		Bookings:  bookingRepo,
		Logs:      logRepo,
		Customers: customerRepo,
	}
	userService := &services.UserService{
		Users:        userRepo,
		TokenManager: tokenManager,
		Storage:      storage,
	}
	customerService := &services.CustomerService{
		Customers:    customerRepo,
		Businesses:   businessRepo,
		Logs:         logRepo,
		TokenManager: tokenManager,
	}
	bookingService := &services.BookingService{
		Bookings:   bookingRepo,
		Businesses: businessRepo,
		Customers:  customerRepo,
		Users:      userRepo,
		Invoices:   invoiceService,
		Notifier:   notifier,
		Location:   loc,
		ErrorLog:   errorLog,
	}
	deliveryService := &services.DeliveryService{
		Logs:      logRepo,
		Requests:  requestRepo,
		Customers: customerRepo,
		Expenses:  expenseRepo,
		Users:     userRepo,
		Invoices:  invoiceService,
		Notifier:  notifier,
		ErrorLog:  errorLog,
	}
	reportService := &services.ReportService{
		Logs:      logRepo,
		Expenses:  expenseRepo,
		Sales:     saleRepo,
		Customers: customerRepo,
		Users:     userRepo,
	}
	wageService := &services.WageService{
		Wages:    wageRepo,
		Redis:    redisClient,
		Location: loc,
		InfoLog:  infoLog,
		ErrorLog: errorLog,
	}
	billingService := &services.BillingService{
		Subscriptions: subscriptionRepo,
		Businesses:    businessRepo,
		GatewaySecret: cfg.Gateway.KeySecret,
		InfoLog:       infoLog,
	}
	businessService := &services.BusinessService{Businesses: businessRepo}
	salesService := &services.SalesService{Sales: saleRepo, Businesses: businessRepo}
	cartService := &services.CartService{
		Suppliers: supplierRepo,
		Users:     userRepo,
		Notifier:  notifier,
		ErrorLog:  errorLog,
	}

	return &application{
		errorLog:     errorLog,
		infoLog:      infoLog,
		cfg:          cfg,
		db:           db,
		location:     loc,
		tokenManager: tokenManager,

		userRepo:     userRepo,
		businessRepo: businessRepo,

		wageService:    wageService,
		billingService: billingService,

		authHandler:     &handlers.AuthHandler{Users: userService, Customers: customerService},
		userHandler:     &handlers.UserHandler{Service: userService},
		businessHandler: &handlers.BusinessHandler{Service: businessService},
		customerHandler: &handlers.CustomerHandler{Service: customerService, Invoices: invoiceService},
		bookingHandler:  &handlers.BookingHandler{Service: bookingService},
		deliveryHandler: &handlers.DeliveryHandler{Service: deliveryService},
		reportHandler:   &handlers.ReportHandler{Service: reportService, Location: loc},
		billingHandler:  &handlers.BillingHandler{Service: billingService},
		invoiceHandler:  &handlers.InvoiceHandler{Service: invoiceService},
		salesHandler:    &handlers.SalesHandler{Service: salesService},
		supplierHandler: &handlers.SupplierHandler{Service: cartService},
	}, nil
}
