package eventstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/magabrotheeeer/event-aggregator/internal/models"
)

func setupTestStore(t *testing.T) (*Store, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mongo:6",
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("27017/tcp"),
			wait.ForLog("Waiting for connections"),
		).WithDeadline(3 * time.Minute),
	}

	mongoContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	port, err := mongoContainer.MappedPort(ctx, nat.Port("27017/tcp"))
	require.NoError(t, err, "Failed to get port")

	uri := fmt.Sprintf("mongodb://localhost:%s", port.Port())

	// Пробуем подключиться несколько раз с ретраями
	var client *mongo.Client
	for range 10 {
		client, err = mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err == nil {
			err = client.Ping(ctx, readpref.Primary())
			if err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to connect to mongodb after retries")

	store := New(client.Database("testdb").Collection("events"))

	cleanup := func() {
		if client != nil {
			_ = client.Disconnect(ctx)
		}
		if mongoContainer != nil {
			_ = mongoContainer.Terminate(ctx)
		}
	}

	return store, cleanup
}

func testEvent(title string, participants int) *models.Event {
	return &models.Event{
		Title:       title,
		Description: "Open air",
		Location: models.GeoPoint{
			Type:        "Point",
			Coordinates: []float64{2.35, 48.85},
			Address:     "5 rue de Rivoli, Paris",
		},
		Date:         time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Type:         "music",
		Participants: participants,
		Price:        15,
		Image:        models.DefaultEventImage,
		Creator:      "alice",
		CreatedAt:    time.Now().UTC().Truncate(time.Millisecond),
		UpdatedAt:    time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestStore_InsertAndListAll(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	first := testEvent("Concert", 100)
	require.NoError(t, store.Insert(ctx, first))
	assert.False(t, first.ID.IsZero(), "Insert should set the generated id")

	second := testEvent("Exhibition", 30)
	require.NoError(t, store.Insert(ctx, second))

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Concert", events[0].Title)
	assert.Equal(t, []float64{2.35, 48.85}, events[0].Location.Coordinates)
	assert.Equal(t, "Exhibition", events[1].Title)
}

func TestStore_IncrementParticipants(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	event := testEvent("Concert", 250)
	require.NoError(t, store.Insert(ctx, event))

	updated, err := store.IncrementParticipants(ctx, event.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 251, updated.Participants, "counter should grow by exactly one")
	assert.Equal(t, event.ID, updated.ID)
	assert.True(t, updated.UpdatedAt.After(event.UpdatedAt))

	// Повторный вызов работает от уже обновлённого документа.
	updated, err = store.IncrementParticipants(ctx, event.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 252, updated.Participants)
}

func TestStore_IncrementParticipants_NotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	// Некорректный идентификатор неотличим для вызывающего от отсутствующего.
	_, err := store.IncrementParticipants(ctx, "not-a-hex-id")
	require.Error(t, err)
	assert.True(t, errors.Is(err, mongo.ErrNoDocuments))

	_, err = store.IncrementParticipants(ctx, primitive.NewObjectID().Hex())
	require.Error(t, err)
	assert.True(t, errors.Is(err, mongo.ErrNoDocuments))
}

func TestStore_DeleteFirstByTitle(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testEvent("Summer Concert", 10)))
	require.NoError(t, store.Insert(ctx, testEvent("Winter concert", 20)))
	require.NoError(t, store.Insert(ctx, testEvent("Exhibition", 30)))

	// Подстрока без учёта регистра, удаляется только первое совпадение.
	n, err := store.DeleteFirstByTitle(ctx, "CONCERT")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Winter concert", events[0].Title)
	assert.Equal(t, "Exhibition", events[1].Title)
}

func TestStore_DeleteFirstByTitle_NoMatch(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, testEvent("Exhibition", 30)))

	n, err := store.DeleteFirstByTitle(ctx, "concert")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)

	events, err := store.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, events, 1)
}
