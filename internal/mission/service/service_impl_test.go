package service

import (
	"context"
	"testing"

	missiondomain "github.com/agrilinklabs/agrilink/internal/mission/domain"
	"github.com/agrilinklabs/agrilink/internal/mission/repository"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	quotedomain "github.com/agrilinklabs/agrilink/internal/quote/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type quoteStub struct {
	estimate *quotedomain.Estimate
	err      error
	calls    int
}

func (q *quoteStub) Estimate(ctx context.Context, req quotedomain.Request) (*quotedomain.Estimate, error) {
	q.calls++
	if q.err != nil {
		return nil, q.err
	}
	return q.estimate, nil
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func setupMissionService(t *testing.T, quote quotedomain.Service) (missiondomain.Service, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&missiondomain.Mission{}))

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: mustNode(t),
		Repo:  repository.Provide(),
		Quote: quote,
	})
	return svc, db
}

func fixedEstimate(total string) *quotedomain.Estimate {
	amount := decimal.RequireFromString(total)
	return &quotedomain.Estimate{
		Lines:    []quotedomain.LineItem{{Label: "base", Amount: amount}},
		Subtotal: amount,
		Total:    amount,
		Currency: "EUR",
	}
}

func createRequest(ownerID snowflake.ID) missiondomain.CreateMissionRequest {
	return missiondomain.CreateMissionRequest{
		OwnerID:                ownerID.String(),
		Title:                  "Prune the nursery rows",
		RequiredRank:           ruledomain.Worker,
		RequiredSpecialization: ruledomain.NurseryWorker,
		RequiredExperience:     ruledomain.Qualified,
		SurfaceArea:            2,
		SurfaceUnit:            ruledomain.Hectares,
		DistanceKm:             12,
		EstimatedHours:         16,
	}
}

func TestCreateMissionSnapshotsQuote(t *testing.T) {
	quote := &quoteStub{estimate: fixedEstimate("1880")}
	svc, _ := setupMissionService(t, quote)

	node := mustNode(t)
	mission, err := svc.Create(context.Background(), createRequest(node.Generate()))
	require.NoError(t, err)

	assert.Equal(t, 1, quote.calls)
	assert.Equal(t, missiondomain.StatusDraft, mission.Status)
	assert.Equal(t, 1880.0, mission.QuotedTotal)
	assert.NotEmpty(t, mission.QuoteDetail)

	got, err := svc.GetByID(context.Background(), missiondomain.GetMissionRequest{ID: mission.ID.String()})
	require.NoError(t, err)
	assert.Equal(t, 1880.0, got.QuotedTotal)
}

func TestCreateMissionRejectsBadProfile(t *testing.T) {
	quote := &quoteStub{estimate: fixedEstimate("100")}
	svc, _ := setupMissionService(t, quote)

	node := mustNode(t)
	req := createRequest(node.Generate())
	req.RequiredSpecialization = ruledomain.Agronomy

	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, missiondomain.ErrInvalidProfile)
	assert.Zero(t, quote.calls)
}

func TestUpdateMissionRequotesOnFigureChange(t *testing.T) {
	quote := &quoteStub{estimate: fixedEstimate("1880")}
	svc, _ := setupMissionService(t, quote)

	node := mustNode(t)
	mission, err := svc.Create(context.Background(), createRequest(node.Generate()))
	require.NoError(t, err)

	quote.estimate = fixedEstimate("2050")
	area := 3.0
	updated, err := svc.Update(context.Background(), missiondomain.UpdateMissionRequest{
		ID:          mission.ID.String(),
		SurfaceArea: &area,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, quote.calls)
	assert.Equal(t, 2050.0, updated.QuotedTotal)
	assert.Equal(t, 3.0, updated.SurfaceArea)
}

func TestUpdateMissionTitleOnlySkipsRequote(t *testing.T) {
	quote := &quoteStub{estimate: fixedEstimate("1880")}
	svc, _ := setupMissionService(t, quote)

	node := mustNode(t)
	mission, err := svc.Create(context.Background(), createRequest(node.Generate()))
	require.NoError(t, err)

	title := "Prune and mulch"
	updated, err := svc.Update(context.Background(), missiondomain.UpdateMissionRequest{
		ID:    mission.ID.String(),
		Title: &title,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, quote.calls)
	assert.Equal(t, "Prune and mulch", updated.Title)
	assert.Equal(t, 1880.0, updated.QuotedTotal)
}

func TestMissionLifecycleTransitions(t *testing.T) {
	quote := &quoteStub{estimate: fixedEstimate("500")}
	svc, _ := setupMissionService(t, quote)

	node := mustNode(t)
	mission, err := svc.Create(context.Background(), createRequest(node.Generate()))
	require.NoError(t, err)

	ctx := context.Background()

	// draft -> assigned skips published.
	_, err = svc.Transition(ctx, missiondomain.TransitionMissionRequest{
		ID: mission.ID.String(), Status: missiondomain.StatusAssigned,
	})
	require.ErrorIs(t, err, missiondomain.ErrInvalidTransition)

	for _, status := range []missiondomain.Status{
		missiondomain.StatusPublished,
		missiondomain.StatusAssigned,
		missiondomain.StatusCompleted,
	} {
		mission, err = svc.Transition(ctx, missiondomain.TransitionMissionRequest{
			ID: mission.ID.String(), Status: status,
		})
		require.NoError(t, err)
		assert.Equal(t, status, mission.Status)
	}

	// Completed is terminal.
	_, err = svc.Transition(ctx, missiondomain.TransitionMissionRequest{
		ID: mission.ID.String(), Status: missiondomain.StatusCancelled,
	})
	require.ErrorIs(t, err, missiondomain.ErrInvalidTransition)
}

func TestUpdateMissionFrozenAfterPublish(t *testing.T) {
	quote := &quoteStub{estimate: fixedEstimate("500")}
	svc, _ := setupMissionService(t, quote)

	node := mustNode(t)
	mission, err := svc.Create(context.Background(), createRequest(node.Generate()))
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), missiondomain.TransitionMissionRequest{
		ID: mission.ID.String(), Status: missiondomain.StatusPublished,
	})
	require.NoError(t, err)

	area := 5.0
	_, err = svc.Update(context.Background(), missiondomain.UpdateMissionRequest{
		ID:          mission.ID.String(),
		SurfaceArea: &area,
	})
	require.ErrorIs(t, err, missiondomain.ErrInvalidTransition)
}

func TestDeleteMissionOnlyDraftOrCancelled(t *testing.T) {
	quote := &quoteStub{estimate: fixedEstimate("500")}
	svc, _ := setupMissionService(t, quote)

	node := mustNode(t)
	mission, err := svc.Create(context.Background(), createRequest(node.Generate()))
	require.NoError(t, err)

	_, err = svc.Transition(context.Background(), missiondomain.TransitionMissionRequest{
		ID: mission.ID.String(), Status: missiondomain.StatusPublished,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), mission.ID.String())
	require.ErrorIs(t, err, missiondomain.ErrInvalidTransition)

	_, err = svc.Transition(context.Background(), missiondomain.TransitionMissionRequest{
		ID: mission.ID.String(), Status: missiondomain.StatusCancelled,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), mission.ID.String()))

	_, err = svc.GetByID(context.Background(), missiondomain.GetMissionRequest{ID: mission.ID.String()})
	require.ErrorIs(t, err, missiondomain.ErrNotFound)
}
