package reminders

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fz7jjhvdk4-create/Bimanager/internal/domain/models"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository"
	"github.com/fz7jjhvdk4-create/Bimanager/internal/repository/sqlitedb"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	store, err := sqlitedb.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewService(store, nil)
}

func TestCreateValidatesInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, Input{Category: "Inspektion", Date: "2026-05-01"})
	require.ErrorIs(t, err, ErrInvalidInput)

	bad := "Varannan dag"
	_, err = svc.Create(ctx, Input{
		Title:      "Varroakontroll",
		Category:   "Varroabehandling",
		Date:       "2026-05-01",
		Recurrence: &bad,
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, Input{
		Title:    "Varroakontroll",
		Category: "Varroabehandling",
		Date:     "inte ett datum",
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestSetDoneStampsCompletion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	doneAt := time.Date(2026, time.May, 2, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return doneAt }

	reminder, err := svc.Create(ctx, Input{
		Title:    "Vårinspektion",
		Category: "Inspektion",
		Date:     "2026-05-01",
	})
	require.NoError(t, err)
	require.False(t, reminder.Done)

	completed, err := svc.SetDone(ctx, reminder.ID, true)
	require.NoError(t, err)
	require.True(t, completed.Done)
	require.NotNil(t, completed.DoneAt)
	require.True(t, completed.DoneAt.Equal(doneAt))

	reopened, err := svc.SetDone(ctx, reminder.ID, false)
	require.NoError(t, err)
	require.False(t, reopened.Done)
	require.Nil(t, reopened.DoneAt)
}

func TestRecurrenceSpawnsNextOccurrence(t *testing.T) {
	cases := []struct {
		recurrence string
		next       string
	}{
		{models.RepetitionWeekly, "2026-05-08"},
		{models.RepetitionMonthly, "2026-06-01"},
		{models.RepetitionYearly, "2027-05-01"},
	}

	for _, tc := range cases {
		t.Run(tc.recurrence, func(t *testing.T) {
			svc := newTestService(t)
			ctx := context.Background()

			rec := tc.recurrence
			reminder, err := svc.Create(ctx, Input{
				Title:      "Varroabehandling",
				Category:   "Varroabehandling",
				Date:       "2026-05-01",
				Recurrence: &rec,
			})
			require.NoError(t, err)

			_, err = svc.SetDone(ctx, reminder.ID, true)
			require.NoError(t, err)

			open := false
			pending, err := svc.List(ctx, repository.ReminderFilter{Done: &open})
			require.NoError(t, err)
			require.Len(t, pending, 1)
			require.Equal(t, "Varroabehandling", pending[0].Title)
			require.Equal(t, tc.next, pending[0].Date.Format("2006-01-02"))
			require.NotNil(t, pending[0].Recurrence)
			require.Equal(t, tc.recurrence, *pending[0].Recurrence)
		})
	}
}

func TestNonRecurringCompletionSpawnsNothing(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	reminder, err := svc.Create(ctx, Input{
		Title:    "Invintring",
		Category: "Invintring",
		Date:     "2026-10-01",
	})
	require.NoError(t, err)

	_, err = svc.SetDone(ctx, reminder.ID, true)
	require.NoError(t, err)

	all, err := svc.List(ctx, repository.ReminderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestCompletingTwiceSpawnsOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	rec := models.RepetitionWeekly
	reminder, err := svc.Create(ctx, Input{
		Title:      "Genomgång",
		Category:   "Inspektion",
		Date:       "2026-05-01",
		Recurrence: &rec,
	})
	require.NoError(t, err)

	_, err = svc.SetDone(ctx, reminder.ID, true)
	require.NoError(t, err)
	_, err = svc.SetDone(ctx, reminder.ID, true)
	require.NoError(t, err)

	all, err := svc.List(ctx, repository.ReminderFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestDueRespectsLeadDays(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	svc.now = func() time.Time { return time.Date(2026, time.May, 10, 8, 0, 0, 0, time.UTC) }

	lead := 3
	_, err := svc.Create(ctx, Input{
		Title:    "Snart dags",
		Category: "Inspektion",
		Date:     "2026-05-12",
		LeadDays: &lead,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Input{
		Title:    "Långt kvar",
		Category: "Inspektion",
		Date:     "2026-05-20",
		LeadDays: &lead,
	})
	require.NoError(t, err)

	due, err := svc.Due(ctx)
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, "Snart dags", due[0].Title)
}
