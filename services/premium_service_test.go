package services

import (
	"testing"
	"time"

	"rentbot-backend/config"
	"rentbot-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSubscriptionConfig() config.SubscriptionConfig {
	return config.SubscriptionConfig{
		MonthlyPrice:      12000,
		YearlyPrice:       100000,
		FreePropertyLimit: 1,
	}
}

func TestActivatePremiumOpensWindowAndRecordsSubscription(t *testing.T) {
	db := newTestDB(t)
	user := createLandlord(t, db, 100)

	svc := NewPremiumService(db, testSubscriptionConfig())
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = fixedClock(at)

	require.NoError(t, svc.ActivatePremium(user.ID, models.SubscriptionMonthly))

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	assert.True(t, got.IsPremium)
	require.NotNil(t, got.PremiumExpiresAt)
	assert.Equal(t, at.Add(30*24*time.Hour).Unix(), got.PremiumExpiresAt.Unix())

	var sub models.Subscription
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&sub).Error)
	assert.Equal(t, "paid", sub.PaymentStatus)
	assert.Equal(t, 12000.0, sub.Amount)
}

func TestActivatePremiumRestartsWindow(t *testing.T) {
	db := newTestDB(t)
	user := createLandlord(t, db, 100)

	svc := NewPremiumService(db, testSubscriptionConfig())

	first := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(first)
	require.NoError(t, svc.ActivatePremium(user.ID, models.SubscriptionMonthly))

	// 20 days still remain; a second activation discards them.
	second := first.Add(10 * 24 * time.Hour)
	svc.now = fixedClock(second)
	require.NoError(t, svc.ActivatePremium(user.ID, models.SubscriptionMonthly))

	var got models.User
	require.NoError(t, db.First(&got, user.ID).Error)
	require.NotNil(t, got.PremiumExpiresAt)
	assert.Equal(t, second.Add(30*24*time.Hour).Unix(), got.PremiumExpiresAt.Unix(),
		"second activation restarts the window, it does not extend it")
}

func TestActivatePremiumUnknownUser(t *testing.T) {
	db := newTestDB(t)

	svc := NewPremiumService(db, testSubscriptionConfig())
	assert.ErrorIs(t, svc.ActivatePremium(9999, models.SubscriptionMonthly), ErrNotFound)

	var count int64
	db.Model(&models.Subscription{}).Count(&count)
	assert.Zero(t, count, "no subscription row without a user update")
}

func TestCreatePremiumRequestChecksPrice(t *testing.T) {
	db := newTestDB(t)
	user := createLandlord(t, db, 100)

	svc := NewPremiumService(db, testSubscriptionConfig())

	_, err := svc.CreatePremiumRequest(user.ID, models.SubscriptionMonthly, 5000)
	assert.ErrorIs(t, err, ErrPriceMismatch)

	request, err := svc.CreatePremiumRequest(user.ID, models.SubscriptionMonthly, 12000)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, request.Status)

	_, err = svc.CreatePremiumRequest(user.ID, "weekly", 12000)
	assert.Error(t, err)
}

func TestApprovePremiumRequest(t *testing.T) {
	db := newTestDB(t)
	user := createLandlord(t, db, 100)

	svc := NewPremiumService(db, testSubscriptionConfig())
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = fixedClock(at)

	request, err := svc.CreatePremiumRequest(user.ID, models.SubscriptionYearly, 100000)
	require.NoError(t, err)

	approved, err := svc.ApprovePremiumRequest(request.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, approved.UserID)

	// The returned request reflects the approval, not the row as it was
	// loaded at the start of the transaction.
	assert.Equal(t, models.RequestStatusApproved, approved.Status)
	require.NotNil(t, approved.ProcessedAt)
	assert.Equal(t, at.Unix(), approved.ProcessedAt.Unix())

	var gotRequest models.PremiumRequest
	require.NoError(t, db.First(&gotRequest, request.ID).Error)
	assert.Equal(t, models.RequestStatusApproved, gotRequest.Status)
	assert.NotNil(t, gotRequest.ProcessedAt)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	assert.True(t, gotUser.IsPremium)
	require.NotNil(t, gotUser.PremiumExpiresAt)
	assert.Equal(t, at.Add(365*24*time.Hour).Unix(), gotUser.PremiumExpiresAt.Unix())
}

func TestApprovePremiumRequestNotFoundOrProcessed(t *testing.T) {
	db := newTestDB(t)
	user := createLandlord(t, db, 100)

	svc := NewPremiumService(db, testSubscriptionConfig())

	_, err := svc.ApprovePremiumRequest(9999)
	assert.ErrorIs(t, err, ErrNotFound)

	request, err := svc.CreatePremiumRequest(user.ID, models.SubscriptionMonthly, 12000)
	require.NoError(t, err)

	_, err = svc.ApprovePremiumRequest(request.ID)
	require.NoError(t, err)

	// Terminal: a second approval is a no-op not-found.
	_, err = svc.ApprovePremiumRequest(request.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.RejectPremiumRequest(request.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApprovePremiumRequestIsAtomic(t *testing.T) {
	db := newTestDB(t)

	// Request pointing at a user that no longer exists: the user update
	// fails after the request update, and both must roll back.
	request := models.PremiumRequest{
		UserID:           9999,
		SubscriptionType: models.SubscriptionMonthly,
		Amount:           12000,
		Status:           models.RequestStatusPending,
		RequestedAt:      time.Now(),
	}
	require.NoError(t, db.Create(&request).Error)

	svc := NewPremiumService(db, testSubscriptionConfig())
	_, err := svc.ApprovePremiumRequest(request.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var got models.PremiumRequest
	require.NoError(t, db.First(&got, request.ID).Error)
	assert.Equal(t, models.RequestStatusPending, got.Status, "partial commit must not survive")
	assert.Nil(t, got.ProcessedAt)
}

func TestRejectPremiumRequestLeavesUserAlone(t *testing.T) {
	db := newTestDB(t)
	user := createLandlord(t, db, 100)

	svc := NewPremiumService(db, testSubscriptionConfig())
	request, err := svc.CreatePremiumRequest(user.ID, models.SubscriptionMonthly, 12000)
	require.NoError(t, err)

	require.NoError(t, svc.RejectPremiumRequest(request.ID))

	var gotRequest models.PremiumRequest
	require.NoError(t, db.First(&gotRequest, request.ID).Error)
	assert.Equal(t, models.RequestStatusRejected, gotRequest.Status)

	var gotUser models.User
	require.NoError(t, db.First(&gotUser, user.ID).Error)
	assert.False(t, gotUser.IsPremium)
}

func TestHasActivePremiumIsLazy(t *testing.T) {
	db := newTestDB(t)

	svc := NewPremiumService(db, testSubscriptionConfig())
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	expired := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	// Stored flag still true, window already past: not premium.
	assert.False(t, svc.HasActivePremium(&models.User{IsPremium: true, PremiumExpiresAt: &expired}))
	assert.False(t, svc.HasActivePremium(&models.User{IsPremium: true}))
	assert.False(t, svc.HasActivePremium(&models.User{IsPremium: false, PremiumExpiresAt: &future}))
	assert.True(t, svc.HasActivePremium(&models.User{IsPremium: true, PremiumExpiresAt: &future}))
}

func TestCanAddPropertyFreeLimit(t *testing.T) {
	db := newTestDB(t)
	user := createLandlord(t, db, 100)

	svc := NewPremiumService(db, testSubscriptionConfig())
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	allowed, err := svc.CanAddProperty(user.ID)
	require.NoError(t, err)
	assert.True(t, allowed)

	createProperty(t, db, user.ID, 500000)

	allowed, err = svc.CanAddProperty(user.ID)
	require.NoError(t, err)
	assert.False(t, allowed, "free tier caps at one property")

	// An expired premium window does not lift the limit.
	expired := now.Add(-time.Hour)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"is_premium": true, "premium_expires_at": expired}).Error)

	allowed, err = svc.CanAddProperty(user.ID)
	require.NoError(t, err)
	assert.False(t, allowed)

	require.NoError(t, svc.ActivatePremium(user.ID, models.SubscriptionMonthly))

	allowed, err = svc.CanAddProperty(user.ID)
	require.NoError(t, err)
	assert.True(t, allowed)
}
