package lists

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	listsdomain "pocketcart/internal/domain/lists"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return NewPostgres(db), mock
}

func TestGetByIDNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shopping_lists"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "items"}))

	_, err := repo.GetByID(context.Background(), "user-1", "list-1")
	require.ErrorIs(t, err, listsdomain.ErrListNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDDecodesItems(t *testing.T) {
	repo, mock := newMockRepo(t)
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "items"}).
		AddRow("list-1", "user-1", "Weekly", []byte(`[{"item_id":"a","name":"Milk","quantity":2,"price":null,"checked":false}]`))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shopping_lists"`)).WillReturnRows(rows)

	list, err := repo.GetByID(context.Background(), "user-1", "list-1")
	require.NoError(t, err)
	require.Equal(t, "Weekly", list.Name)
	require.Len(t, list.Items, 1)
	require.Equal(t, 2.0, list.Items[0].Quantity.FloatOr(0))
	require.False(t, list.Items[0].Price.IsSet())
}

func TestDeleteReportsMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "shopping_lists"`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := repo.Delete(context.Background(), "user-1", "list-1")
	require.NoError(t, err)
	require.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
