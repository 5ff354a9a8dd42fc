package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis returns a client whose every command fails, so cache reads
// miss cleanly and the repository falls through to PostgreSQL.
func unreachableRedis() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:        "localhost:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})
}

var transactionViewCols = []string{
	"id", "source_account_id", "destination_account_id", "amount", "created_at",
	"src_id", "src_user_id", "src_bank_name", "src_account_number", "src_balance", "src_created_at",
	"dst_id", "dst_user_id", "dst_bank_name", "dst_account_number", "dst_balance", "dst_created_at",
}

// fixtureNow is fixed so rows built for the same logical record are identical
// across calls.
var fixtureNow = time.Now()

func transactionViewRow(rows *sqlmock.Rows, id int64, amount float64) *sqlmock.Rows {
	now := fixtureNow
	return rows.AddRow(
		id, int64(1), int64(2), amount, now,
		int64(1), int64(10), "Vault Bank", "9000000001", 1250.0, now,
		int64(2), int64(20), "Vault Bank", "9000000002", 1750.0, now,
	)
}

func TestTransactionList_EmptyIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions t")).
		WillReturnRows(sqlmock.NewRows(transactionViewCols))

	repo := NewTransactionReadRepository(db, unreachableRedis())
	views, err := repo.List(context.Background())

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoTransactions))
	assert.Nil(t, views)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionList_JoinsAccountSnapshots(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(transactionViewCols)
	transactionViewRow(rows, 1, 250)
	transactionViewRow(rows, 2, 75)
	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions t")).
		WillReturnRows(rows)

	repo := NewTransactionReadRepository(db, unreachableRedis())
	views, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].ID)
	assert.Equal(t, 250.0, views[0].Amount)
	assert.Equal(t, int64(1), views[0].SourceAccount.ID)
	assert.Equal(t, "9000000001", views[0].SourceAccount.AccountNumber)
	assert.Equal(t, 1250.0, views[0].SourceAccount.Balance)
	assert.Equal(t, int64(2), views[0].DestinationAccount.ID)
	assert.Equal(t, 1750.0, views[0].DestinationAccount.Balance)
	assert.Equal(t, 75.0, views[1].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(transactionViewRow(sqlmock.NewRows(transactionViewCols), 1, 250))

	repo := NewTransactionReadRepository(db, unreachableRedis())
	view, err := repo.GetByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1), view.ID)
	assert.Equal(t, int64(1), view.SourceAccountID)
	assert.Equal(t, int64(2), view.DestinationAccountID)
	assert.Equal(t, 250.0, view.Amount)
	assert.Equal(t, "9000000002", view.DestinationAccount.AccountNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionGetByID_ReadsAreIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// The cache never hits here, so both reads go to the database and must
	// return identical data.
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(transactionViewRow(sqlmock.NewRows(transactionViewCols), 1, 250))
	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(transactionViewRow(sqlmock.NewRows(transactionViewCols), 1, 250))

	repo := NewTransactionReadRepository(db, unreachableRedis())
	first, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	second, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Amount, second.Amount)
	assert.Equal(t, first.SourceAccount, second.SourceAccount)
	assert.Equal(t, first.DestinationAccount, second.DestinationAccount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionGetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(int64(999)).
		WillReturnError(sql.ErrNoRows)

	repo := NewTransactionReadRepository(db, unreachableRedis())
	view, err := repo.GetByID(context.Background(), 999)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransactionNotFound))
	assert.Contains(t, err.Error(), "transaction with ID 999")
	assert.Nil(t, view)
	assert.NoError(t, mock.ExpectationsWereMet())
}
