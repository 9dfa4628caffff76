package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"time"

	"github.com/google/uuid"

	"aquaBack/internal/models"
	"aquaBack/internal/repositories"
)

type BillingService struct {
	Subscriptions *repositories.SubscriptionRepository
	Businesses    *repositories.BusinessRepository
	GatewaySecret string
	InfoLog       *log.Logger
}

func (s *BillingService) ListPlans(ctx context.Context) ([]models.SubscriptionPlan, error) {
	return s.Subscriptions.ListPlans(ctx)
}

// effectivePrice picks the sale price when one is set, then applies the
// coupon's percentage discount.
func effectivePrice(plan models.SubscriptionPlan, coupon *models.Coupon) float64 {
	price := plan.RegularPrice
	if plan.SalePrice > 0 && plan.SalePrice < plan.RegularPrice {
		price = plan.SalePrice
	}
	if coupon != nil {
		price = price * (1 - coupon.DiscountPercentage/100)
	}
	if price < 0 {
		price = 0
	}
	return price
}

// extendFrom anchors a subscription extension: an active subscription extends
// from its current end, a lapsed one restarts from now.
func extendFrom(now time.Time, endsAt *time.Time) time.Time {
	if endsAt != nil && endsAt.After(now) {
		return *endsAt
	}
	return now
}

// Checkout opens a gateway order for a plan purchase. The amount is locked in
// on the payment row so a later coupon change cannot alter what is owed.
func (s *BillingService) Checkout(ctx context.Context, actor models.Actor, req models.CheckoutRequest) (models.Payment, error) {
	if !actor.Role.CanManageBusiness() {
		return models.Payment{}, models.ErrForbidden
	}
	plan, err := s.Subscriptions.GetPlan(ctx, req.PlanID)
	if err != nil {
		return models.Payment{}, err
	}

	var coupon *models.Coupon
	if req.CouponCode != "" {
		c, err := s.Subscriptions.GetCouponByCode(ctx, req.CouponCode)
		if err != nil {
			return models.Payment{}, err
		}
		coupon = &c
	}

	payment := models.Payment{
		BusinessID:         actor.BusinessID,
		GatewayOrderID:     "order_" + uuid.NewString(),
		Amount:             effectivePrice(plan, coupon),
		Status:             models.PaymentCreated,
		SubscriptionPlanID: plan.ID,
	}
	return s.Subscriptions.CreatePayment(ctx, payment)
}

// verifySignature checks the gateway callback: HMAC-SHA256 over
// "<order_id>|<payment_id>", hex encoded.
func verifySignature(orderID, paymentID, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := mac.Sum(nil)

	sigBytes, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(expected, sigBytes)
}

// ConfirmPayment validates the gateway signature and activates the
// subscription. A valid repeat callback is a no-op thanks to the payment
// status guard.
func (s *BillingService) ConfirmPayment(ctx context.Context, req models.PaymentSuccessRequest) (models.Business, error) {
	if !verifySignature(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature, s.GatewaySecret) {
		return models.Business{}, models.ErrSignatureMismatch
	}
	payment, err := s.Subscriptions.GetPaymentByOrderID(ctx, req.GatewayOrderID)
	if err != nil {
		return models.Business{}, err
	}
	if err := s.Subscriptions.MarkPaymentSuccessful(ctx, payment.ID, req.GatewayPaymentID, req.GatewaySignature); err != nil {
		return models.Business{}, err
	}
	return s.activate(ctx, payment.BusinessID, payment.SubscriptionPlanID)
}

func (s *BillingService) activate(ctx context.Context, businessID, planID int) (models.Business, error) {
	plan, err := s.Subscriptions.GetPlan(ctx, planID)
	if err != nil {
		return models.Business{}, err
	}
	biz, err := s.Businesses.GetByID(ctx, businessID)
	if err != nil {
		return models.Business{}, err
	}

	now := time.Now()
	endsAt := extendFrom(now, biz.SubscriptionEndsAt).AddDate(0, 0, plan.DurationDays)
	if err := s.Businesses.ActivateSubscription(ctx, businessID, planID, endsAt); err != nil {
		return models.Business{}, err
	}
	s.InfoLog.Printf("business %d subscribed to plan %d until %s", businessID, planID, endsAt.Format("2006-01-02"))
	return s.Businesses.GetByID(ctx, businessID)
}

func (s *BillingService) FailPayment(ctx context.Context, gatewayOrderID string) error {
	payment, err := s.Subscriptions.GetPaymentByOrderID(ctx, gatewayOrderID)
	if err != nil {
		return err
	}
	return s.Subscriptions.MarkPaymentFailed(ctx, payment.ID)
}

// RequestCOD records a cash-on-delivery purchase for an admin to approve.
func (s *BillingService) RequestCOD(ctx context.Context, actor models.Actor, planID int) (models.Payment, error) {
	if !actor.Role.CanManageBusiness() {
		return models.Payment{}, models.ErrForbidden
	}
	plan, err := s.Subscriptions.GetPlan(ctx, planID)
	if err != nil {
		return models.Payment{}, err
	}
	return s.Subscriptions.CreatePayment(ctx, models.Payment{
		BusinessID:         actor.BusinessID,
		GatewayOrderID:     "cod_" + uuid.NewString(),
		Amount:             effectivePrice(plan, nil),
		Status:             models.PaymentCOD,
		SubscriptionPlanID: plan.ID,
	})
}

// ApproveCOD lets an admin activate a subscription paid in cash.
func (s *BillingService) ApproveCOD(ctx context.Context, actor models.Actor, gatewayOrderID string) (models.Business, error) {
	if actor.Role != models.RoleAdmin {
		return models.Business{}, models.ErrForbidden
	}
	payment, err := s.Subscriptions.GetPaymentByOrderID(ctx, gatewayOrderID)
	if err != nil {
		return models.Business{}, err
	}
	if payment.Status != models.PaymentCOD {
		return models.Business{}, models.ErrPaymentNotFound
	}
	return s.activate(ctx, payment.BusinessID, payment.SubscriptionPlanID)
}

func (s *BillingService) PaymentHistory(ctx context.Context, actor models.Actor) ([]models.Payment, error) {
	if !actor.Role.CanManageBusiness() {
		return nil, models.ErrForbidden
	}
	return s.Subscriptions.ListPaymentsForBusiness(ctx, actor.BusinessID)
}
