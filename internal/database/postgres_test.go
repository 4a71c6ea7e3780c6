package database

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gamedex/catalog-crawler/internal/catalog"
)

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxConnIface) {
	t.Helper()
	mock, err := pgxmock.NewConn()
	require.NoError(t, err)
	return NewPostgresStoreWithConn(mock, zaptest.NewLogger(t)), mock
}

func TestPostgresStoreInitBootstrapsSchema(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectPing()
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS entries").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, store.Init(context.Background()))
	require.NotEmpty(t, store.runID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreInitPingFailure(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))

	err := store.Init(context.Background())
	require.ErrorContains(t, err, "ping postgres")
}

func TestPostgresStoreInsertEntry(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	store.runID = "3f1d2c44-0000-0000-0000-000000000000"

	entry := &catalog.Entry{
		Platform:  "ps3",
		Title:     "Demon's Souls",
		Regions:   []string{"us"},
		RomID:     "BLUS30443",
		BoxartURL: "",
		Links: []catalog.Link{
			{Name: "Demon's Souls", URL: "http://example.org/demonssouls.pkg"},
		},
	}

	mock.ExpectExec("INSERT INTO entries").
		WithArgs(
			store.runID,
			"ps3",
			"Demon's Souls",
			[]byte(`["us"]`),
			"BLUS30443",
			nil,
			pgxmock.AnyArg(),
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.InsertEntry(context.Background(), entry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreInsertEntryFailure(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO entries").
		WillReturnError(errors.New("relation does not exist"))

	err := store.InsertEntry(context.Background(), &catalog.Entry{Title: "Broken"})
	require.ErrorContains(t, err, `insert entry "Broken"`)
}

func TestPostgresStoreCloseWithoutConn(t *testing.T) {
	t.Parallel()

	store := NewPostgresStore("postgres://localhost/catalog", zaptest.NewLogger(t))
	require.NoError(t, store.Close(context.Background()))
}

func TestPostgresStoreClose(t *testing.T) {
	t.Parallel()

	store, mock := newMockStore(t)
	mock.ExpectClose()
	require.NoError(t, store.Close(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
