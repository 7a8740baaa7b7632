package storage_room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/planpoker/core/internal/model"
	usecase_room "github.com/planpoker/core/internal/usecase/room"
)

type fakeCache struct {
	data    map[string][]byte
	lastTTL time.Duration
	lastKey string
	err     error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	data, ok := f.data[key]
	return data, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = value
	f.lastKey = key
	f.lastTTL = ttl
	return nil
}

func sampleRoom() *model.Room {
	createdAt := time.Date(2025, time.March, 14, 9, 26, 53, 0, time.UTC)
	room, _ := model.NewRoom(model.RoomID("a4c135d6-1111-2222-3333-444455556666"), "Sprint", model.DeckFibonacci, createdAt)
	_ = room.AddMember(model.MemberToken("token-alice"), "Alice")
	_ = room.AddMember(model.MemberToken("token-bob"), "Bob")
	room.SetVote(model.MemberToken("token-alice"), 5)
	return room
}

type StorageRoomUnitSuite struct {
	suite.Suite
}

func (suite *StorageRoomUnitSuite) TestRoundTrip(t provider.T) {
	ctx := context.Background()
	cache := newFakeCache()
	storage := New(cache, 48*time.Hour)

	room := sampleRoom()
	room.Phase = model.PhaseComplete

	assert.NoError(t, storage.Save(ctx, room))

	loaded, err := storage.Load(ctx, room.ID)
	assert.NoError(t, err)
	assert.Equal(t, room, loaded)
}

func (suite *StorageRoomUnitSuite) TestSaveAppliesTTL(t provider.T) {
	ctx := context.Background()
	cache := newFakeCache()
	storage := New(cache, 48*time.Hour)

	room := sampleRoom()
	assert.NoError(t, storage.Save(ctx, room))

	assert.Equal(t, 48*time.Hour, cache.lastTTL)
	assert.Equal(t, string(room.ID), cache.lastKey)
}

func (suite *StorageRoomUnitSuite) TestLoadMissingRoom(t provider.T) {
	ctx := context.Background()
	storage := New(newFakeCache(), 48*time.Hour)

	_, err := storage.Load(ctx, model.RoomID("unknown"))

	assert.ErrorIs(t, err, usecase_room.ErrRoomNotFound)
}

func (suite *StorageRoomUnitSuite) TestLoadCacheFailure(t provider.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.err = errors.New("connection refused")
	storage := New(cache, 48*time.Hour)

	_, err := storage.Load(ctx, model.RoomID("any"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, usecase_room.ErrRoomNotFound)
}

func (suite *StorageRoomUnitSuite) TestLoadCorruptDocument(t provider.T) {
	ctx := context.Background()
	cache := newFakeCache()
	cache.data["broken"] = []byte("{not json")
	storage := New(cache, 48*time.Hour)

	_, err := storage.Load(ctx, model.RoomID("broken"))

	assert.Error(t, err)
	assert.NotErrorIs(t, err, usecase_room.ErrRoomNotFound)
}

func TestStorageRoomUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(StorageRoomUnitSuite))
}
