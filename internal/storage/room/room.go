package storage_room

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/planpoker/core/internal/model"
	usecase_room "github.com/planpoker/core/internal/usecase/room"
)

// Cache is a keyed byte store with per-write expiry. Backed by Redis
// in production; an absent key and an expired key are the same thing.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Storage serializes the room aggregate into a single document per
// room. Every Save re-applies the TTL, extending the room's lifetime.
type Storage struct {
	cache Cache
	ttl   time.Duration
}

func New(
	cache Cache,
	ttl time.Duration,
) *Storage {
	return &Storage{
		cache: cache,
		ttl:   ttl,
	}
}

type memberSnapshot struct {
	Name string `json:"name"`
	Vote *int   `json:"vote"`
}

type roomSnapshot struct {
	ID        string                    `json:"id"`
	Name      string                    `json:"name"`
	Phase     string                    `json:"phase"`
	Deck      string                    `json:"deck"`
	CreatedAt time.Time                 `json:"created_at"`
	Members   map[string]memberSnapshot `json:"members"`
}

func (s *Storage) Load(ctx context.Context, id model.RoomID) (*model.Room, error) {
	data, found, err := s.cache.Get(ctx, string(id))
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, usecase_room.ErrRoomNotFound
	}

	var snapshot roomSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("corrupt room document %s : %w", id, err)
	}

	return fromSnapshot(snapshot), nil
}

func (s *Storage) Save(ctx context.Context, room *model.Room) error {
	data, err := json.Marshal(toSnapshot(room))
	if err != nil {
		return fmt.Errorf("marshal room document %s : %w", room.ID, err)
	}

	return s.cache.Set(ctx, string(room.ID), data, s.ttl)
}

func toSnapshot(room *model.Room) roomSnapshot {
	members := make(map[string]memberSnapshot, len(room.Members))
	for token, m := range room.Members {
		var vote *int
		if m.Vote != nil {
			v := *m.Vote
			vote = &v
		}
		members[string(token)] = memberSnapshot{
			Name: m.Name,
			Vote: vote,
		}
	}

	return roomSnapshot{
		ID:        string(room.ID),
		Name:      room.Name,
		Phase:     string(room.Phase),
		Deck:      string(room.Deck),
		CreatedAt: room.CreatedAt,
		Members:   members,
	}
}

func fromSnapshot(snapshot roomSnapshot) *model.Room {
	members := make(map[model.MemberToken]*model.Member, len(snapshot.Members))
	for token, m := range snapshot.Members {
		var vote *int
		if m.Vote != nil {
			v := *m.Vote
			vote = &v
		}
		members[model.MemberToken(token)] = &model.Member{
			Name: m.Name,
			Vote: vote,
		}
	}

	return &model.Room{
		ID:        model.RoomID(snapshot.ID),
		Name:      snapshot.Name,
		Phase:     model.Phase(snapshot.Phase),
		Deck:      model.DeckKind(snapshot.Deck),
		CreatedAt: snapshot.CreatedAt,
		Members:   members,
	}
}
