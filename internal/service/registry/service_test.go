package registry

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

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

	return NewService(store, nil, nil)
}

func createApiary(t *testing.T, svc *Service, name string) *models.Apiary {
	t.Helper()

	apiary, err := svc.CreateApiary(context.Background(), ApiaryInput{Name: name})
	require.NoError(t, err)
	return apiary
}

func createColony(t *testing.T, svc *Service, apiaryID, name string) *models.Colony {
	t.Helper()

	race := "Buckfast"
	year := 2024
	colony, err := svc.CreateColony(context.Background(), ColonyInput{
		ApiaryID:  apiaryID,
		Name:      name,
		QueenRace: &race,
		QueenYear: &year,
	})
	require.NoError(t, err)
	return colony
}

func TestCreateApiaryRequiresName(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateApiary(context.Background(), ApiaryInput{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestDeleteApiaryGuardedByColonies(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma")
	createColony(t, svc, apiary.ID, "Samhälle 1")

	err := svc.DeleteApiary(ctx, apiary.ID)
	require.ErrorIs(t, err, ErrApiaryHasColonies)

	empty := createApiary(t, svc, "Skogen")
	require.NoError(t, svc.DeleteApiary(ctx, empty.ID))
}

func TestListApiariesCountsColonies(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma")
	createColony(t, svc, apiary.ID, "Samhälle 1")
	lost := createColony(t, svc, apiary.ID, "Samhälle 2")

	_, err := svc.UpdateColony(ctx, lost.ID, ColonyInput{
		Name:   lost.Name,
		Status: models.ColonyStatusLost,
	})
	require.NoError(t, err)

	list, err := svc.ListApiaries(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 2, list[0].TotalColonies)
	require.Equal(t, 1, list[0].ActiveColonies)
}

func TestCreateColonyVerifiesApiary(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateColony(context.Background(), ColonyInput{
		ApiaryID: "missing",
		Name:     "Samhälle 1",
	})
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteColonyCascadesEvents(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma")
	colony := createColony(t, svc, apiary.ID, "Samhälle 1")

	_, err := svc.CreateEvent(ctx, EventInput{
		ColonyID: colony.ID,
		Type:     models.EventTypeInspection,
		Date:     "2026-05-01",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteColony(ctx, colony.ID))

	events, err := svc.ListEvents(ctx, repository.EventFilter{ColonyID: colony.ID})
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestCreateEventValidatesTypeAndPayload(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma")
	colony := createColony(t, svc, apiary.ID, "Samhälle 1")

	_, err := svc.CreateEvent(ctx, EventInput{
		ColonyID: colony.ID,
		Type:     "Okänd",
		Date:     "2026-05-01",
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateEvent(ctx, EventInput{
		ColonyID: colony.ID,
		Type:     models.EventTypeInspection,
		Date:     "2026-05-01",
		Data:     json.RawMessage(`{"styrka": "Enormt"}`),
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	result, err := svc.CreateEvent(ctx, EventInput{
		ColonyID: colony.ID,
		Type:     models.EventTypeHarvest,
		Date:     "2026-07-15",
		Data:     json.RawMessage(`{"mangdKg": 18.5}`),
	})
	require.NoError(t, err)
	require.Equal(t, models.EventTypeHarvest, result.Event.Type)
	require.Empty(t, result.NewColonyID)
}

func TestSplitEventCreatesLinkedColony(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma")
	parent := createColony(t, svc, apiary.ID, "Samhälle 1")

	result, err := svc.CreateEvent(ctx, EventInput{
		ColonyID: parent.ID,
		Type:     models.EventTypeSplit,
		Date:     "2026-06-01",
		Data:     json.RawMessage(`{"skapaNyttSamhalle": true, "nyttSamhalleNamn": "Avläggare A"}`),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.NewColonyID)

	child, err := svc.GetColony(ctx, result.NewColonyID)
	require.NoError(t, err)
	require.Equal(t, "Avläggare A", child.Name)
	require.Equal(t, apiary.ID, child.ApiaryID)
	require.Equal(t, models.ColonyStatusActive, child.Status)
	require.NotNil(t, child.CreatedFromID)
	require.Equal(t, parent.ID, *child.CreatedFromID)
	require.NotNil(t, child.QueenRace)
	require.Equal(t, "Buckfast", *child.QueenRace)
	require.NotNil(t, child.QueenYear)
	require.Equal(t, 2026, *child.QueenYear)
	require.NotNil(t, child.Notes)
	require.Contains(t, *child.Notes, "Avläggare skapad 2026-06-01 från Samhälle 1")

	var data models.SplitData
	require.NoError(t, json.Unmarshal(result.Event.Data, &data))
	require.True(t, data.ColonyCreated)
	require.Equal(t, child.ID, data.CreatedColonyID)
}

func TestSplitEventWithoutFlagCreatesNoColony(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	apiary := createApiary(t, svc, "Hemma")
	parent := createColony(t, svc, apiary.ID, "Samhälle 1")

	result, err := svc.CreateEvent(ctx, EventInput{
		ColonyID: parent.ID,
		Type:     models.EventTypeSplit,
		Date:     "2026-06-01",
	})
	require.NoError(t, err)
	require.Empty(t, result.NewColonyID)

	colonies, err := svc.ListColonies(ctx, repository.ColonyFilter{ApiaryID: apiary.ID})
	require.NoError(t, err)
	require.Len(t, colonies, 1)
}
