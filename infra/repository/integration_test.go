package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jwhwang/atmbank/pkg/domain"
	"github.com/jwhwang/atmbank/pkg/repository"
)

func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	if os.Getenv("ATMBANK_INTEGRATION") == "" {
		t.Skip("set ATMBANK_INTEGRATION=1 to run integration tests against Docker")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("atmbank"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&BankCard{}, &BankAccount{}, &AccountHistory{}))
	return db
}

// Two handlers race to append the same record index for the same account.
// The unique index must let exactly one through; the loser gets the
// integrity error and writes nothing.
func TestConcurrentUpdateAccountRace(t *testing.T) {
	db := setupPostgres(t)
	require.NoError(t, db.Create(&BankAccount{ID: 1, UserID: 7, Name: "checking"}).Error)

	uow := NewUoW(db)
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		go func() {
			results <- uow.Do(context.Background(), func(tx repository.UnitOfWork) error {
				repo, err := tx.AccountRepository()
				if err != nil {
					return err
				}
				account, err := repo.GetUserAccount(context.Background(), 7, 1)
				if err != nil {
					return err
				}
				if _, err := account.Deposit(100); err != nil {
					return err
				}
				return repo.UpdateAccount(context.Background(), account)
			})
		}()
	}

	var successes, collisions int
	for i := 0; i < 2; i++ {
		err := <-results
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, domain.ErrHistoryIntegrity)
			collisions++
		}
	}
	assert.Equal(t, 1, successes, "exactly one writer lands the record")
	assert.Equal(t, 1, collisions, "the other gets the integrity error")

	var count int64
	require.NoError(t, db.Model(&AccountHistory{}).
		Where("account_id = ? AND record_index = ?", 1, 1).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "exactly one record exists at the contested index")
}

func TestUpdateAccountBatchIsAtomic(t *testing.T) {
	db := setupPostgres(t)
	require.NoError(t, db.Create(&BankAccount{ID: 2, UserID: 7, Name: "savings"}).Error)
	// A row at index 2 will collide with the second record of the batch.
	require.NoError(t, db.Create(&AccountHistory{AccountID: 2, RecordIndex: 2, Balance: 1, Action: "deposit"}).Error)

	uow := NewUoW(db)
	err := uow.Do(context.Background(), func(tx repository.UnitOfWork) error {
		repo, err := tx.AccountRepository()
		if err != nil {
			return err
		}
		account := domain.NewAccount(2, 7, "savings", nil)
		if _, err := account.Deposit(10); err != nil { // index 1
			return err
		}
		if _, err := account.Deposit(20); err != nil { // index 2, collides
			return err
		}
		return repo.UpdateAccount(context.Background(), account)
	})
	require.ErrorIs(t, err, domain.ErrHistoryIntegrity)

	var count int64
	require.NoError(t, db.Model(&AccountHistory{}).
		Where("account_id = ? AND record_index = ?", 2, 1).
		Count(&count).Error)
	assert.Zero(t, count, "no record of the failed batch is committed")
}
