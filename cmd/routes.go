package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"aquaBack/internal/models"
)

func (app *application) routes() http.Handler {
	standard := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	anyAuth := standard.Append(app.requireAuth(models.RoleManager, models.RoleStaff, models.RoleSupplier, models.RoleCustomer))
	managerAuth := standard.Append(app.requireAuth(models.RoleManager))
	managerSubscribed := managerAuth.Append(app.requireSubscription)
	staffAuth := standard.Append(app.requireAuth(models.RoleManager, models.RoleStaff))
	staffSubscribed := staffAuth.Append(app.requireSubscription)
	customerAuth := standard.Append(app.requireAuth(models.RoleCustomer))
	adminAuth := standard.Append(app.requireAuth())
	supplierAuth := standard.Append(app.requireAuth(models.RoleSupplier))

	mux := pat.New()

	// Auth
	mux.Post("/auth/sign_in", standard.ThenFunc(app.authHandler.SignIn))
	mux.Post("/auth/customer/sign_in", standard.ThenFunc(app.authHandler.CustomerSignIn))
	mux.Post("/auth/refresh", standard.ThenFunc(app.authHandler.Refresh))
	mux.Post("/auth/sign_out", standard.ThenFunc(app.authHandler.SignOut))
	mux.Post("/auth/change_password", anyAuth.ThenFunc(app.authHandler.ChangePassword))
	mux.Post("/auth/device_token", anyAuth.ThenFunc(app.authHandler.RegisterDeviceToken))
	mux.Del("/auth/device_token/:token", anyAuth.ThenFunc(app.authHandler.DeleteDeviceToken))

	// Businesses (admin) and business self-service
	mux.Post("/business", adminAuth.ThenFunc(app.businessHandler.Create))
	mux.Get("/business", adminAuth.ThenFunc(app.businessHandler.List))
	mux.Get("/business/mine", managerAuth.ThenFunc(app.businessHandler.Mine))
	mux.Get("/business/:id", adminAuth.ThenFunc(app.businessHandler.Get))
	mux.Put("/business/settings", managerSubscribed.ThenFunc(app.businessHandler.UpdateSettings))
	mux.Post("/business/stock", managerSubscribed.ThenFunc(app.businessHandler.AddStock))

	// Staff management
	mux.Post("/staff", managerSubscribed.ThenFunc(app.userHandler.CreateStaff))
	mux.Get("/staff", managerSubscribed.ThenFunc(app.userHandler.ListStaff))
	mux.Get("/staff/me", staffAuth.ThenFunc(app.userHandler.Me))
	mux.Get("/staff/:id", managerSubscribed.ThenFunc(app.userHandler.Get))
	mux.Put("/staff/:id", managerSubscribed.ThenFunc(app.userHandler.UpdateStaff))
	mux.Del("/staff/:id", managerSubscribed.ThenFunc(app.userHandler.DeleteStaff))
	mux.Post("/staff/:id/id_proof", managerSubscribed.ThenFunc(app.userHandler.UploadIDProof))
	mux.Post("/staff/:id/reset_password", managerSubscribed.ThenFunc(app.userHandler.ResetPassword))
	mux.Post("/staff/:id/receive_cash", managerSubscribed.ThenFunc(app.userHandler.ReceiveCash))

	// Customers
	mux.Post("/customer", managerSubscribed.ThenFunc(app.customerHandler.Create))
	mux.Get("/customer", staffSubscribed.ThenFunc(app.customerHandler.List))
	mux.Get("/customer/search", staffSubscribed.ThenFunc(app.customerHandler.Search))
	mux.Get("/customer/dues", staffSubscribed.ThenFunc(app.customerHandler.WithDues))
	mux.Get("/customer/:id", staffSubscribed.ThenFunc(app.customerHandler.Get))
	mux.Put("/customer/:id", managerSubscribed.ThenFunc(app.customerHandler.Update))
	mux.Del("/customer/:id", managerSubscribed.ThenFunc(app.customerHandler.Delete))
	mux.Get("/customer/:id/history", staffSubscribed.ThenFunc(app.customerHandler.CustomerHistory))

	// Customer self-service
	mux.Get("/me/history", customerAuth.ThenFunc(app.customerHandler.History))
	mux.Get("/me/payment_qr", customerAuth.ThenFunc(app.customerHandler.PaymentQR))
	mux.Get("/me/invoices", customerAuth.ThenFunc(app.customerHandler.MyInvoices))
	mux.Post("/me/jar_request", customerAuth.ThenFunc(app.deliveryHandler.RequestJars))
	mux.Get("/me/jar_requests", customerAuth.ThenFunc(app.deliveryHandler.MyRequests))
	mux.Post("/me/booking", customerAuth.ThenFunc(app.bookingHandler.CreateByCustomer))
	mux.Get("/me/bookings", customerAuth.ThenFunc(app.bookingHandler.MyBookings))

	// Deliveries and field operations
	mux.Post("/delivery/customer/:id", staffSubscribed.ThenFunc(app.deliveryHandler.LogDelivery))
	mux.Get("/delivery/requests", staffSubscribed.ThenFunc(app.deliveryHandler.PendingRequests))
	mux.Post("/delivery/requests/:id/fulfil", staffSubscribed.ThenFunc(app.deliveryHandler.FulfilRequest))
	mux.Post("/delivery/customer/:id/clear_dues", staffSubscribed.ThenFunc(app.deliveryHandler.ClearDues))
	mux.Post("/delivery/expense", staffSubscribed.ThenFunc(app.deliveryHandler.AddExpense))
	mux.Post("/delivery/sale", staffSubscribed.ThenFunc(app.salesHandler.RecordSale))

	// Event bookings
	mux.Post("/booking", staffSubscribed.ThenFunc(app.bookingHandler.CreateByStaff))
	mux.Get("/booking/pending", managerSubscribed.ThenFunc(app.bookingHandler.ListPending))
	mux.Get("/booking/today", staffSubscribed.ThenFunc(app.bookingHandler.DeliveriesForToday))
	mux.Get("/booking/status/:status", staffSubscribed.ThenFunc(app.bookingHandler.ListByStatus))
	mux.Get("/booking/:id", staffSubscribed.ThenFunc(app.bookingHandler.Get))
	mux.Post("/booking/:id/confirm", managerSubscribed.ThenFunc(app.bookingHandler.Confirm))
	mux.Post("/booking/:id/deliver", staffSubscribed.ThenFunc(app.bookingHandler.Deliver))
	mux.Post("/booking/:id/collect", staffSubscribed.ThenFunc(app.bookingHandler.Collect))

	// Reports
	mux.Get("/report/daily", managerSubscribed.ThenFunc(app.reportHandler.Daily))
	mux.Get("/report/range", managerSubscribed.ThenFunc(app.reportHandler.Range))
	mux.Get("/report/staff", managerSubscribed.ThenFunc(app.reportHandler.StaffOverview))

	// Invoices
	mux.Get("/invoice", managerSubscribed.ThenFunc(app.invoiceHandler.ListForBusiness))
	mux.Post("/invoice/monthly", managerSubscribed.ThenFunc(app.invoiceHandler.GenerateMonthly))
	mux.Get("/invoice/:id", anyAuth.ThenFunc(app.invoiceHandler.Get))

	// Subscription billing
	mux.Get("/billing/plans", standard.ThenFunc(app.billingHandler.Plans))
	mux.Post("/billing/checkout", managerAuth.ThenFunc(app.billingHandler.Checkout))
	mux.Post("/billing/payment_success", standard.ThenFunc(app.billingHandler.PaymentSuccess))
	mux.Post("/billing/payment_failed", standard.ThenFunc(app.billingHandler.PaymentFailed))
	mux.Post("/billing/cod", managerAuth.ThenFunc(app.billingHandler.RequestCOD))
	mux.Post("/billing/cod/approve", adminAuth.ThenFunc(app.billingHandler.ApproveCOD))
	mux.Get("/billing/history", managerAuth.ThenFunc(app.billingHandler.History))

	// Supplier marketplace
	mux.Get("/market/catalog", managerSubscribed.ThenFunc(app.supplierHandler.Catalog))
	mux.Get("/market/cart", managerSubscribed.ThenFunc(app.supplierHandler.GetCart))
	mux.Post("/market/cart", managerSubscribed.ThenFunc(app.supplierHandler.SetCartItem))
	mux.Post("/market/checkout", managerSubscribed.ThenFunc(app.supplierHandler.Checkout))
	mux.Get("/market/orders", anyAuth.ThenFunc(app.supplierHandler.MyOrders))
	mux.Post("/market/product", supplierAuth.ThenFunc(app.supplierHandler.CreateProduct))
	mux.Get("/market/products", supplierAuth.ThenFunc(app.supplierHandler.MyProducts))
	mux.Put("/market/product/:id", supplierAuth.ThenFunc(app.supplierHandler.UpdateProduct))
	mux.Del("/market/product/:id", supplierAuth.ThenFunc(app.supplierHandler.DeleteProduct))

	return mux
}
