package migration

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sentinelQuery = "SELECT to_regclass('public.subscriptions') IS NOT NULL"

func TestEnsureMigrated_Skip(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err = EnsureMigrated(context.Background(), db, zerolog.New(&buf), "localhost")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "db_migration_skip")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_RunsSteps(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	for _, step := range steps {
		mock.ExpectExec(regexp.QuoteMeta(step.SQL)).WillReturnResult(sqlmock.NewResult(0, 0))
	}

	err = EnsureMigrated(context.Background(), db, zerolog.New(&buf), "localhost")

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "db_migration_success")
	assert.Contains(t, buf.String(), `"component":"database"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_StepFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(regexp.QuoteMeta(steps[0].SQL)).WillReturnError(errors.New("permission denied"))

	err = EnsureMigrated(context.Background(), db, zerolog.Nop(), "localhost")

	assert.ErrorContains(t, err, "migration step create_table_subscriptions failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureMigrated_SentinelFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(sentinelQuery)).WillReturnError(errors.New("timeout"))

	err = EnsureMigrated(context.Background(), db, zerolog.Nop(), "localhost")

	assert.ErrorContains(t, err, "failed to check sentinel table")
}
