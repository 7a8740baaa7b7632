package http_voting

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planpoker/core/internal/model"
	usecase_room "github.com/planpoker/core/internal/usecase/room"
)

type fakeStorage struct {
	rooms map[model.RoomID]*model.Room
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{rooms: make(map[model.RoomID]*model.Room)}
}

func (f *fakeStorage) Load(_ context.Context, id model.RoomID) (*model.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return nil, usecase_room.ErrRoomNotFound
	}
	return room, nil
}

func (f *fakeStorage) Save(_ context.Context, room *model.Room) error {
	f.rooms[room.ID] = room
	return nil
}

type fixture struct {
	router *gin.Engine
	uc     *usecase_room.Usecase
	roomID model.RoomID
	alice  model.MemberToken
	bob    model.MemberToken
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := usecase_room.New(newFakeStorage())
	engine := gin.New()
	New(uc).RegisterRoutes(engine.Group("/api/v1"))

	ctx := context.Background()
	roomID, alice, _, err := uc.Create(ctx, "Sprint", "Alice", model.DeckFibonacci)
	require.NoError(t, err)
	bob, _, err := uc.Join(ctx, roomID, "Bob")
	require.NoError(t, err)

	return &fixture{
		router: engine,
		uc:     uc,
		roomID: roomID,
		alice:  alice,
		bob:    bob,
	}
}

func (f *fixture) post(t *testing.T, path string, body gin.H) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, "/api/v1/rooms/"+string(f.roomID)+path, bytes.NewBuffer(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestVote(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/vote", gin.H{"token": string(f.alice), "vote": 5})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"success":true`)
	assert.Contains(t, w.Body.String(), `"has_voted":true`)
	assert.NotContains(t, w.Body.String(), `"vote":5`)
}

func TestVoteZeroValue(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/vote", gin.H{"token": string(f.alice), "vote": 0})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVoteOutsideDecks(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/vote", gin.H{"token": string(f.alice), "vote": 7})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteForeignToken(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/vote", gin.H{"token": "stranger", "vote": 5})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestVoteAfterReveal(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Reveal(context.Background(), f.roomID, f.alice)
	require.NoError(t, err)

	w := f.post(t, "/vote", gin.H{"token": string(f.alice), "vote": 5})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReveal(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Vote(context.Background(), f.roomID, f.alice, 5)
	require.NoError(t, err)

	w := f.post(t, "/reveal", gin.H{"token": string(f.bob)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"vote":5`)
	assert.Contains(t, w.Body.String(), `"vote":null`)
}

func TestRevealTwice(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Reveal(context.Background(), f.roomID, f.alice)
	require.NoError(t, err)

	w := f.post(t, "/reveal", gin.H{"token": string(f.alice)})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.uc.Vote(ctx, f.roomID, f.alice, 5)
	require.NoError(t, err)
	_, err = f.uc.Reveal(ctx, f.roomID, f.alice)
	require.NoError(t, err)

	w := f.post(t, "/reset", gin.H{"token": string(f.bob)})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phase":"voting"`)
	assert.Contains(t, w.Body.String(), `"has_voted":false`)
	assert.NotContains(t, w.Body.String(), `"has_voted":true`)
}

func TestVotingOnUnknownRoom(t *testing.T) {
	f := newFixture(t)
	f.roomID = model.RoomID("no-such-room")

	for _, path := range []string{"/vote", "/reveal", "/reset"} {
		body := gin.H{"token": string(f.alice)}
		if path == "/vote" {
			body["vote"] = 5
		}
		w := f.post(t, path, body)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestMissingToken(t *testing.T) {
	f := newFixture(t)

	w := f.post(t, "/reveal", gin.H{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
