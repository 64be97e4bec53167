package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/repository/specification"
	"event-reg-be/internal/repository/unitofwork"
	"event-reg-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.RegistrationRepository())
	assert.NotNil(t, uow.RegistrantRepository())
	assert.NotNil(t, uow.CancelRequestRepository())
	assert.NotNil(t, uow.ExpenseRequestRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Registration Status Counts", func(t *testing.T) {
		counts, err := uow.RegistrationRepository().CountByStatus(context.Background())
		assert.NoError(t, err)
		t.Logf("Registrations by status: %v", counts)
	})

	t.Run("Transactional Registration With Registrants", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			Role:     lifecycle.RoleUser,
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		configId := uuid.New()
		config := &entity.EventConfig{
			ID:                configId,
			Name:              "Integration Event " + uuid.New().String(),
			FeePerParticipant: 350000,
			StartDate:         time.Now().AddDate(0, 1, 0),
			EndDate:           time.Now().AddDate(0, 1, 2),
		}
		err = uow.EventRepository().CreateConfig(ctx, config)
		assert.NoError(t, err)

		// Transaction Test
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		registrationId := uuid.New()
		registration := &entity.Registration{
			ID:               registrationId,
			UserID:           userId,
			EventConfigID:    configId,
			InvoiceCode:      "DHTEST" + uuid.New().String()[:6],
			Status:           lifecycle.StatusConfirmed,
			TotalAmount:      350000,
			ParticipantCount: 1,
		}
		err = uow.RegistrationRepository().Create(ctx, registration)
		assert.NoError(t, err)

		registrantId := uuid.New()
		registrant := &entity.Registrant{
			ID:             registrantId,
			RegistrationID: registrationId,
			FullName:       "Integration Registrant",
			Gender:         "male",
			IsPrimary:      true,
		}
		err = uow.RegistrantRepository().Create(ctx, registrant)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Registration with Registrant in Transaction")

		t.Run("Conditional CheckIn Update", func(t *testing.T) {
			affected, err := uow.RegistrantRepository().MarkCheckedIn(ctx, registrantId, time.Now())
			assert.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			// Second scan must lose the conditional update.
			affected, err = uow.RegistrantRepository().MarkCheckedIn(ctx, registrantId, time.Now())
			assert.NoError(t, err)
			assert.Equal(t, int64(0), affected)

			fresh, err := uow.RegistrantRepository().FindOne(ctx, specification.ByID{ID: registrantId})
			assert.NoError(t, err)
			if assert.NotNil(t, fresh) {
				assert.True(t, fresh.IsCheckedIn)
				assert.NotNil(t, fresh.CheckedInAt)
			}
		})
	})
}
