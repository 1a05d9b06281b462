package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/erolls-portal/internal/models"
)

func newJournalRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var journalColumns = []string{"id", "actor_id", "actor_role", "target_type", "target_id", "action", "outcome", "detail", "request_id", "decision", "created_at"}

func TestJournalRepositoryEnsureSchema(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS portal_action_journal")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewJournalRepository(db).EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryInsertDefaults(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO portal_action_journal")).
		WithArgs(sqlmock.AnyArg(), "ro-1", "RO", "migration", "mig-1", "approve", "succeeded", "", "req-1", "{}", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.JournalEntry{
		ActorID:    "ro-1",
		ActorRole:  "RO",
		TargetType: "migration",
		TargetID:   "mig-1",
		Action:     "approve",
		Outcome:    models.OutcomeSucceeded,
		RequestID:  "req-1",
	}
	require.NoError(t, NewJournalRepository(db).Insert(context.Background(), entry))
	require.NotEmpty(t, entry.ID)
	require.False(t, entry.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newJournalRepoMock(t)
	defer cleanup()

	rows := sqlmock.NewRows(journalColumns).
		AddRow("j-1", "ro-1", "RO", "migration", "mig-1", "reject", "failed", "already rejected", "req-9", "{}", time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, actor_id, actor_role")).
		WithArgs("migration", "mig-1", 100).
		WillReturnRows(rows)

	entries, err := NewJournalRepository(db).List(context.Background(), models.JournalFilter{TargetType: "migration", TargetID: "mig-1"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, models.OutcomeFailed, entries[0].Outcome)
	require.NoError(t, mock.ExpectationsWereMet())
}
