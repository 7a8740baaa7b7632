package model

import (
	"errors"
	"time"
)

var (
	ErrEmptyName    = errors.New("name must not be empty")
	ErrNameTooLong  = errors.New("name exceeds maximum length")
	ErrUnknownDeck  = errors.New("unknown deck")
	ErrUnknownValue = errors.New("value does not belong to any deck")
)

type RoomID string

const EmptyRoomID RoomID = ""

type MemberToken string

const EmptyMemberToken MemberToken = ""

type Phase string

const (
	PhaseVoting   Phase = "voting"
	PhaseComplete Phase = "complete"
)

const (
	MaxRoomNameLen   = 100
	MaxMemberNameLen = 50
)

// Member is a single participant of a room.
// Vote == nil means the member has not voted in the current round.
type Member struct {
	Name string
	Vote *int
}

// Room is the aggregate stored as one document per room.
// Deck and Name never change after creation; Members and Phase do.
type Room struct {
	ID        RoomID
	Name      string
	Phase     Phase
	Deck      DeckKind
	CreatedAt time.Time
	Members   map[MemberToken]*Member
}

func NewRoom(id RoomID, name string, deck DeckKind, createdAt time.Time) (*Room, error) {
	if err := ValidateRoomName(name); err != nil {
		return nil, err
	}
	if !deck.Known() {
		return nil, ErrUnknownDeck
	}

	return &Room{
		ID:        id,
		Name:      name,
		Phase:     PhaseVoting,
		Deck:      deck,
		CreatedAt: createdAt,
		Members:   make(map[MemberToken]*Member),
	}, nil
}

func ValidateRoomName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxRoomNameLen {
		return ErrNameTooLong
	}
	return nil
}

func ValidateMemberName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxMemberNameLen {
		return ErrNameTooLong
	}
	return nil
}

func (r *Room) AddMember(token MemberToken, name string) error {
	if err := ValidateMemberName(name); err != nil {
		return err
	}
	r.Members[token] = &Member{Name: name}
	return nil
}

func (r *Room) HasMember(token MemberToken) bool {
	_, ok := r.Members[token]
	return ok
}

func (r *Room) SetVote(token MemberToken, value int) {
	if m, ok := r.Members[token]; ok {
		v := value
		m.Vote = &v
	}
}

// ClearVotes drops every member's vote and returns the room to the
// voting phase. Members stay.
func (r *Room) ClearVotes() {
	r.Phase = PhaseVoting
	for _, m := range r.Members {
		m.Vote = nil
	}
}
