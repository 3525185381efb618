package service

import (
	"context"
	"errors"
	"testing"

	actordomain "github.com/agrilinklabs/agrilink/internal/actor/domain"
	notificationdomain "github.com/agrilinklabs/agrilink/internal/notification/domain"
	"github.com/agrilinklabs/agrilink/internal/notification/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type emailRecorder struct {
	sent []string
	err  error
}

func (e *emailRecorder) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	if e.err != nil {
		return e.err
	}
	e.sent = append(e.sent, to[0]+": "+subject)
	return nil
}

type actorStub struct {
	actor actordomain.Actor
	err   error
}

func (a *actorStub) Create(ctx context.Context, req actordomain.CreateActorRequest) (actordomain.Actor, error) {
	return actordomain.Actor{}, nil
}

func (a *actorStub) GetByID(ctx context.Context, req actordomain.GetActorRequest) (actordomain.Actor, error) {
	if a.err != nil {
		return actordomain.Actor{}, a.err
	}
	return a.actor, nil
}

func (a *actorStub) List(ctx context.Context, req actordomain.ListActorRequest) (actordomain.ListActorResponse, error) {
	return actordomain.ListActorResponse{}, nil
}

func (a *actorStub) Update(ctx context.Context, req actordomain.UpdateActorRequest) (actordomain.Actor, error) {
	return actordomain.Actor{}, nil
}

func (a *actorStub) Delete(ctx context.Context, id string) error {
	return nil
}

func mustNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func setupNotificationService(t *testing.T, mail *emailRecorder, actors actordomain.Service) notificationdomain.Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&notificationdomain.Notification{}))

	return New(Params{
		DB:     db,
		Log:    zap.NewNop(),
		GenID:  mustNode(t),
		Repo:   repository.Provide(),
		Email:  mail,
		Actors: actors,
	})
}

func TestCreateNotificationSendsEmail(t *testing.T) {
	mail := &emailRecorder{}
	actors := &actorStub{actor: actordomain.Actor{Email: "jean@example.com"}}
	svc := setupNotificationService(t, mail, actors)

	notification, err := svc.Create(context.Background(), notificationdomain.CreateNotificationRequest{
		ActorID: "1234567890123456789",
		Kind:    notificationdomain.KindMission,
		Title:   "Mission assigned",
		Body:    "You have been assigned.",
	})
	require.NoError(t, err)
	assert.False(t, notification.Read)
	assert.Equal(t, []string{"jean@example.com: Mission assigned"}, mail.sent)
}

func TestCreateNotificationSurvivesEmailFailure(t *testing.T) {
	mail := &emailRecorder{err: errors.New("smtp down")}
	actors := &actorStub{actor: actordomain.Actor{Email: "jean@example.com"}}
	svc := setupNotificationService(t, mail, actors)

	notification, err := svc.Create(context.Background(), notificationdomain.CreateNotificationRequest{
		ActorID: "1234567890123456789",
		Kind:    notificationdomain.KindSystem,
		Title:   "Maintenance window",
	})
	require.NoError(t, err)

	listed, err := svc.List(context.Background(), notificationdomain.ListNotificationRequest{
		ActorID: notification.ActorID.String(),
	})
	require.NoError(t, err)
	require.Len(t, listed.Notifications, 1)
}

func TestCreateNotificationSkipsEmailWhenActorMissing(t *testing.T) {
	mail := &emailRecorder{}
	actors := &actorStub{err: actordomain.ErrNotFound}
	svc := setupNotificationService(t, mail, actors)

	_, err := svc.Create(context.Background(), notificationdomain.CreateNotificationRequest{
		ActorID: "1234567890123456789",
		Kind:    notificationdomain.KindAccount,
		Title:   "Welcome",
	})
	require.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestMarkReadAndMarkAllRead(t *testing.T) {
	mail := &emailRecorder{}
	actors := &actorStub{actor: actordomain.Actor{Email: "jean@example.com"}}
	svc := setupNotificationService(t, mail, actors)

	first, err := svc.Create(context.Background(), notificationdomain.CreateNotificationRequest{
		ActorID: "1234567890123456789",
		Kind:    notificationdomain.KindMission,
		Title:   "First",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), notificationdomain.CreateNotificationRequest{
		ActorID: "1234567890123456789",
		Kind:    notificationdomain.KindMission,
		Title:   "Second",
	})
	require.NoError(t, err)

	read, err := svc.MarkRead(context.Background(), first.ID.String())
	require.NoError(t, err)
	assert.True(t, read.Read)

	updated, err := svc.MarkAllRead(context.Background(), first.ActorID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)

	unread, err := svc.List(context.Background(), notificationdomain.ListNotificationRequest{
		ActorID:    first.ActorID.String(),
		UnreadOnly: true,
	})
	require.NoError(t, err)
	assert.Empty(t, unread.Notifications)
}
