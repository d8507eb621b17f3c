package services

import (
	"fmt"
	"testing"
	"time"

	"rentbot-backend/database"
	"rentbot-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection only: every pooled conn would otherwise get its own
	// private in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func createLandlord(t *testing.T, db *gorm.DB, chatID int64) *models.User {
	t.Helper()

	user := &models.User{
		Username: fmt.Sprintf("landlord-%d", chatID),
		Role:     "user",
		FullName: "Test Landlord",
		Language: "uz",
	}
	if chatID != 0 {
		user.TelegramID = &chatID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createProperty(t *testing.T, db *gorm.DB, ownerID uint, rent float64) *models.Property {
	t.Helper()

	property := &models.Property{
		OwnerID:     ownerID,
		Address:     "Tashkent, Chilonzor 5",
		AreaSqm:     54,
		RoomsCount:  2,
		MonthlyRent: rent,
		Currency:    "UZS",
	}
	require.NoError(t, db.Create(property).Error)
	return property
}

func createTenant(t *testing.T, db *gorm.DB, landlordID, propertyID uint, dueDay int, status string, amountDue float64) *models.Tenant {
	t.Helper()

	tenant := &models.Tenant{
		LandlordID:    landlordID,
		PropertyID:    propertyID,
		FullName:      "Test Tenant",
		MoveInDate:    time.Now(),
		RentDueDate:   dueDay,
		PaymentStatus: status,
		AmountDue:     amountDue,
	}
	require.NoError(t, db.Create(tenant).Error)
	return tenant
}

// fixedClock pins a service's notion of now.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
