package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"aquaBack/internal/models"
)

func TestEffectivePrice(t *testing.T) {
	plan := models.SubscriptionPlan{RegularPrice: 1000, SalePrice: 800}
	if got := effectivePrice(plan, nil); got != 800 {
		t.Fatalf("expected sale price 800, got %v", got)
	}

	coupon := &models.Coupon{DiscountPercentage: 25}
	if got := effectivePrice(plan, coupon); got != 600 {
		t.Fatalf("expected 600 after 25%% off sale price, got %v", got)
	}

	noSale := models.SubscriptionPlan{RegularPrice: 1000}
	if got := effectivePrice(noSale, coupon); got != 750 {
		t.Fatalf("expected 750 after 25%% off regular price, got %v", got)
	}

	full := &models.Coupon{DiscountPercentage: 100}
	if got := effectivePrice(noSale, full); got != 0 {
		t.Fatalf("expected free with 100%% coupon, got %v", got)
	}
}

func TestExtendFrom(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := extendFrom(now, nil); !got.Equal(now) {
		t.Fatalf("nil end date should anchor at now, got %v", got)
	}

	past := now.AddDate(0, 0, -10)
	if got := extendFrom(now, &past); !got.Equal(now) {
		t.Fatalf("lapsed subscription should restart from now, got %v", got)
	}

	future := now.AddDate(0, 0, 10)
	if got := extendFrom(now, &future); !got.Equal(future) {
		t.Fatalf("active subscription should extend from its end, got %v", got)
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "gateway-secret"
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte("order_1|pay_1"))
	signature := hex.EncodeToString(mac.Sum(nil))

	if !verifySignature("order_1", "pay_1", signature, secret) {
		t.Fatal("expected signature to be valid")
	}
	if verifySignature("order_1", "pay_2", signature, secret) {
		t.Fatal("unexpected valid signature for wrong payment id")
	}
	if verifySignature("order_1", "pay_1", "deadbeef", secret) {
		t.Fatal("unexpected valid signature for garbage")
	}
}
