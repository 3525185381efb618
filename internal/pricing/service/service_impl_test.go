package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	pricingdomain "github.com/agrilinklabs/agrilink/internal/pricing/domain"
	ruledomain "github.com/agrilinklabs/agrilink/internal/pricingrule/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakeRuleRepo struct {
	mu      sync.Mutex
	rules   map[snowflake.ID]ruledomain.PricingRule
	order   []snowflake.ID
	updates []snowflake.ID
	failIDs map[snowflake.ID]struct{}

	// When set, the first update call closes started and then blocks
	// until release is closed.
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func newFakeRuleRepo(rules ...ruledomain.PricingRule) *fakeRuleRepo {
	repo := &fakeRuleRepo{
		rules:   make(map[snowflake.ID]ruledomain.PricingRule, len(rules)),
		failIDs: make(map[snowflake.ID]struct{}),
	}
	for _, rule := range rules {
		repo.rules[rule.ID] = rule
		repo.order = append(repo.order, rule.ID)
	}
	return repo
}

func (f *fakeRuleRepo) List(ctx context.Context, db *gorm.DB) ([]ruledomain.PricingRule, error) {
	_ = ctx
	_ = db
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ruledomain.PricingRule, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.rules[id])
	}
	return out, nil
}

func (f *fakeRuleRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*ruledomain.PricingRule, error) {
	_ = ctx
	_ = db
	f.mu.Lock()
	defer f.mu.Unlock()
	rule, ok := f.rules[id]
	if !ok {
		return nil, nil
	}
	return &rule, nil
}

func (f *fakeRuleRepo) UpdateFields(ctx context.Context, db *gorm.DB, id snowflake.ID, fields map[string]any) (*ruledomain.PricingRule, error) {
	_ = ctx
	_ = db

	if f.started != nil {
		f.once.Do(func() { close(f.started) })
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, id)
	if _, fail := f.failIDs[id]; fail {
		return nil, errors.New("store unavailable")
	}

	rule, ok := f.rules[id]
	if !ok {
		return nil, ruledomain.ErrNotFound
	}
	for name, value := range fields {
		price := value.(float64)
		switch name {
		case ruledomain.FieldSpecializationBasePrice:
			rule.SpecializationBasePrice = price
		case ruledomain.FieldExperienceMultiplier:
			rule.ExperienceMultiplier = price
		case ruledomain.FieldSurfaceUnitPrice:
			rule.SurfaceUnitPrice = price
		default:
			return nil, ruledomain.ErrInvalidField
		}
	}
	rule.UpdatedAt = time.Now().UTC()
	f.rules[id] = rule
	return &rule, nil
}

func (f *fakeRuleRepo) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updates)
}

func (f *fakeRuleRepo) updatedIDs() []snowflake.ID {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]snowflake.ID, len(f.updates))
	copy(out, f.updates)
	return out
}

func testRule(id int64, rank ruledomain.ActorRank, spec ruledomain.Specialization, basePrice float64) ruledomain.PricingRule {
	return ruledomain.PricingRule{
		ID:                      snowflake.ID(id),
		ActorRank:               rank,
		Specialization:          spec,
		ExperienceLevel:         ruledomain.Starter,
		SurfaceUnit:             ruledomain.Hectares,
		SpecializationBasePrice: basePrice,
		ExperienceMultiplier:    1.0,
		SurfaceUnitPrice:        50,
		PricePerKilometer:       1.5,
		PricePerHour:            20,
		EquipmentPrice:          100,
	}
}

func newTestService(repo ruledomain.Repository) *Service {
	svc := New(Params{
		DB:   nil,
		Log:  zap.NewNop(),
		Repo: repo,
	})
	return svc.(*Service)
}

func TestDeriveViewsDeterministic(t *testing.T) {
	rules := []ruledomain.PricingRule{
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
		testRule(2, ruledomain.Advisor, ruledomain.Irrigation, 2000),
		testRule(3, ruledomain.Worker, ruledomain.HarvestHand, 900),
	}

	first := pricingdomain.DeriveViews(rules)
	second := pricingdomain.DeriveViews(rules)

	require.Equal(t, first, second)
	assert.Len(t, first.Specialization, 3)
	assert.Equal(t, "worker-nursery_worker", first.Specialization[0].Key)
}

func TestDeriveViewsFirstSeenWins(t *testing.T) {
	rules := []ruledomain.PricingRule{
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
		testRule(2, ruledomain.Worker, ruledomain.NurseryWorker, 1500),
	}

	views := pricingdomain.DeriveViews(rules)

	require.Len(t, views.Specialization, 1)
	assert.Equal(t, 1000.0, views.Specialization[0].BasePrice)

	require.Len(t, views.Disagreements, 1)
	assert.Equal(t, pricingdomain.DimensionSpecialization, views.Disagreements[0].Dimension)
	assert.Equal(t, 1000.0, views.Disagreements[0].Kept)
	assert.Equal(t, 1500.0, views.Disagreements[0].Seen)
}

func TestDeriveViewsEmptyInput(t *testing.T) {
	views := pricingdomain.DeriveViews(nil)
	assert.Empty(t, views.Specialization)
	assert.Empty(t, views.Experience)
	assert.Empty(t, views.Surface)
	assert.Empty(t, views.Disagreements)
}

func TestCommitFanOutUpdatesMatchingRowsOnly(t *testing.T) {
	repo := newFakeRuleRepo(
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
		testRule(2, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
		testRule(3, ruledomain.Advisor, ruledomain.Irrigation, 2000),
	)
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))

	svc.RecordPendingEdit(pricingdomain.DimensionSpecialization, "worker-nursery_worker", "1200")
	require.NoError(t, svc.CommitEdit(ctx, pricingdomain.DimensionSpecialization, "worker-nursery_worker"))

	assert.ElementsMatch(t, []snowflake.ID{1, 2}, repo.updatedIDs())

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Pending)

	price, ok := snapshot.Views.SpecializationPrice(ruledomain.Worker, ruledomain.NurseryWorker)
	require.True(t, ok)
	assert.Equal(t, 1200.0, price)

	price, ok = snapshot.Views.SpecializationPrice(ruledomain.Advisor, ruledomain.Irrigation)
	require.True(t, ok)
	assert.Equal(t, 2000.0, price)
}

func TestRecordPendingEditRejectsOutOfRange(t *testing.T) {
	repo := newFakeRuleRepo(
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
	)
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))

	// Multiplier cap is 3.0; the keystroke is silently dropped.
	svc.RecordPendingEdit(pricingdomain.DimensionExperience, "worker-starter", "5.0")

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Pending)

	// Committing with no pending edit is a no-op.
	require.NoError(t, svc.CommitEdit(ctx, pricingdomain.DimensionExperience, "worker-starter"))
	assert.Zero(t, repo.updateCount())
}

func TestRecordPendingEditRejectsGarbage(t *testing.T) {
	svc := newTestService(newFakeRuleRepo())

	svc.RecordPendingEdit(pricingdomain.DimensionSurface, "hectares", "twelve")
	svc.RecordPendingEdit(pricingdomain.DimensionSurface, "hectares", "-3")

	snapshot, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snapshot.Pending)
}

func TestCommitFailureKeepsCacheAndPendingForRetry(t *testing.T) {
	repo := newFakeRuleRepo(
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
		testRule(2, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
	)
	repo.failIDs[snowflake.ID(2)] = struct{}{}

	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))

	svc.RecordPendingEdit(pricingdomain.DimensionSpecialization, "worker-nursery_worker", "1200")
	err := svc.CommitEdit(ctx, pricingdomain.DimensionSpecialization, "worker-nursery_worker")
	require.ErrorIs(t, err, pricingdomain.ErrCommitFailed)

	// Local cache untouched, pending edit retained.
	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	price, ok := snapshot.Views.SpecializationPrice(ruledomain.Worker, ruledomain.NurseryWorker)
	require.True(t, ok)
	assert.Equal(t, 1000.0, price)

	require.Len(t, snapshot.Pending, 1)
	assert.Equal(t, 1200.0, snapshot.Pending[0].Value)
	assert.Equal(t, pricingdomain.StatePending, snapshot.Pending[0].State)

	// Retry succeeds once the store recovers.
	repo.mu.Lock()
	delete(repo.failIDs, snowflake.ID(2))
	repo.mu.Unlock()

	require.NoError(t, svc.CommitEdit(ctx, pricingdomain.DimensionSpecialization, "worker-nursery_worker"))

	snapshot, err = svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Pending)

	price, ok = snapshot.Views.SpecializationPrice(ruledomain.Worker, ruledomain.NurseryWorker)
	require.True(t, ok)
	assert.Equal(t, 1200.0, price)
}

func TestConcurrentCommitSameKeyIgnored(t *testing.T) {
	repo := newFakeRuleRepo(
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
		testRule(2, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
	)
	repo.started = make(chan struct{})
	repo.release = make(chan struct{})

	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))
	svc.RecordPendingEdit(pricingdomain.DimensionSpecialization, "worker-nursery_worker", "1200")

	done := make(chan error, 1)
	go func() {
		done <- svc.CommitEdit(ctx, pricingdomain.DimensionSpecialization, "worker-nursery_worker")
	}()

	select {
	case <-repo.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first commit never reached the store")
	}

	// Second commit for the same key while the first is outstanding.
	err := svc.CommitEdit(ctx, pricingdomain.DimensionSpecialization, "worker-nursery_worker")
	require.ErrorIs(t, err, pricingdomain.ErrCommitInFlight)

	close(repo.release)
	require.NoError(t, <-done)

	// Exactly one fan-out: one update per matching row.
	assert.Equal(t, 2, repo.updateCount())
}

func TestKeystrokeDuringCommitDroppedAndPendingCleared(t *testing.T) {
	repo := newFakeRuleRepo(
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
	)
	repo.started = make(chan struct{})
	repo.release = make(chan struct{})

	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))
	svc.RecordPendingEdit(pricingdomain.DimensionSpecialization, "worker-nursery_worker", "1200")

	done := make(chan error, 1)
	go func() {
		done <- svc.CommitEdit(ctx, pricingdomain.DimensionSpecialization, "worker-nursery_worker")
	}()

	select {
	case <-repo.started:
	case <-time.After(2 * time.Second):
		t.Fatal("commit never reached the store")
	}

	// A keystroke for an in-flight key never lands in pending.
	svc.RecordPendingEdit(pricingdomain.DimensionSpecialization, "worker-nursery_worker", "1500")

	close(repo.release)
	require.NoError(t, <-done)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Pending)

	price, ok := snapshot.Views.SpecializationPrice(ruledomain.Worker, ruledomain.NurseryWorker)
	require.True(t, ok)
	assert.Equal(t, 1200.0, price)
}

func TestCancelEditDropsPendingWithoutStoreCalls(t *testing.T) {
	repo := newFakeRuleRepo(
		testRule(1, ruledomain.Worker, ruledomain.NurseryWorker, 1000),
	)
	svc := newTestService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx))

	svc.RecordPendingEdit(pricingdomain.DimensionSpecialization, "worker-nursery_worker", "1300")
	svc.CancelEdit(pricingdomain.DimensionSpecialization, "worker-nursery_worker")

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Pending)
	assert.Zero(t, repo.updateCount())

	// Commit after cancel is a no-op.
	require.NoError(t, svc.CommitEdit(ctx, pricingdomain.DimensionSpecialization, "worker-nursery_worker"))
	assert.Zero(t, repo.updateCount())
}
