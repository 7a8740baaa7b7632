package usecase_room

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/planpoker/core/internal/model"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrInvalidVote      = errors.New("invalid vote value")
	ErrRoomNotFound     = errors.New("room not found")
	ErrNotAMember       = errors.New("not a member of the room")
	ErrVotingClosed     = errors.New("cannot vote in complete state")
	ErrAlreadyComplete  = errors.New("room already in complete state")
	ErrStoreUnavailable = errors.New("room store unavailable")
)

// RoomStorage persists one snapshot per room. Load returns
// ErrRoomNotFound for a missing or expired room; Save refreshes the
// room's retention window.
//
//go:generate mockery --name=RoomStorage --output=./mocks/room/storage --filename=storage.go
type RoomStorage interface {
	Load(ctx context.Context, id model.RoomID) (*model.Room, error)
	Save(ctx context.Context, room *model.Room) error
}

// Usecase runs the room state machine. Every operation is a
// load-mutate-store cycle with no lock and no version check: of two
// concurrent writers to the same room, the later Save wins and the
// earlier mutation is discarded. Acceptable for a human-paced
// estimation tool; do not rely on linearizable room state.
type Usecase struct {
	storage RoomStorage
}

func New(storage RoomStorage) *Usecase {
	return &Usecase{
		storage: storage,
	}
}

func (u *Usecase) Create(ctx context.Context, roomName, creatorName string, deck model.DeckKind) (model.RoomID, model.MemberToken, model.VotingView, error) {
	roomID := u.buildRoomID()
	token := u.buildMemberToken()

	room, err := model.NewRoom(roomID, roomName, deck, time.Now().UTC())
	if err != nil {
		return model.EmptyRoomID, model.EmptyMemberToken, model.VotingView{}, errors.Join(ErrInvalidArgument, err)
	}
	if err := room.AddMember(token, creatorName); err != nil {
		return model.EmptyRoomID, model.EmptyMemberToken, model.VotingView{}, errors.Join(ErrInvalidArgument, err)
	}

	if err := u.storage.Save(ctx, room); err != nil {
		return model.EmptyRoomID, model.EmptyMemberToken, model.VotingView{}, errors.Join(ErrStoreUnavailable, err)
	}

	return roomID, token, room.VotingView(), nil
}

// Join adds a member under a fresh token. Names are not deduplicated:
// the same name may join twice and ends up with two tokens.
func (u *Usecase) Join(ctx context.Context, roomID model.RoomID, memberName string) (model.MemberToken, model.RoomView, error) {
	if err := model.ValidateMemberName(memberName); err != nil {
		return model.EmptyMemberToken, model.RoomView{}, errors.Join(ErrInvalidArgument, err)
	}

	room, err := u.loadRoom(ctx, roomID)
	if err != nil {
		return model.EmptyMemberToken, model.RoomView{}, err
	}

	token := u.buildMemberToken()
	if err := room.AddMember(token, memberName); err != nil {
		return model.EmptyMemberToken, model.RoomView{}, errors.Join(ErrInvalidArgument, err)
	}

	if err := u.storage.Save(ctx, room); err != nil {
		return model.EmptyMemberToken, model.RoomView{}, errors.Join(ErrStoreUnavailable, err)
	}

	return token, room.View(), nil
}

// State is read-only and intentionally does not refresh the TTL; only
// mutations extend a room's lifetime.
func (u *Usecase) State(ctx context.Context, roomID model.RoomID, token model.MemberToken) (model.RoomView, error) {
	room, err := u.loadRoom(ctx, roomID)
	if err != nil {
		return model.RoomView{}, err
	}

	if !room.HasMember(token) {
		return model.RoomView{}, ErrNotAMember
	}

	return room.View(), nil
}

// Vote submits or overwrites the member's vote. The value is checked
// against the union of all known decks before the store is touched,
// not against the room's own deck.
func (u *Usecase) Vote(ctx context.Context, roomID model.RoomID, token model.MemberToken, value int) (model.VotingView, error) {
	if !model.KnownValue(value) {
		return model.VotingView{}, ErrInvalidVote
	}

	room, err := u.loadRoom(ctx, roomID)
	if err != nil {
		return model.VotingView{}, err
	}

	if !room.HasMember(token) {
		return model.VotingView{}, ErrNotAMember
	}
	if room.Phase == model.PhaseComplete {
		return model.VotingView{}, ErrVotingClosed
	}

	room.SetVote(token, value)

	if err := u.storage.Save(ctx, room); err != nil {
		return model.VotingView{}, errors.Join(ErrStoreUnavailable, err)
	}

	return room.VotingView(), nil
}

// Reveal freezes the vote set. Members who never voted show up with a
// null vote; nothing requires everyone to have voted first.
func (u *Usecase) Reveal(ctx context.Context, roomID model.RoomID, token model.MemberToken) (model.CompleteView, error) {
	room, err := u.loadRoom(ctx, roomID)
	if err != nil {
		return model.CompleteView{}, err
	}

	if !room.HasMember(token) {
		return model.CompleteView{}, ErrNotAMember
	}
	if room.Phase == model.PhaseComplete {
		return model.CompleteView{}, ErrAlreadyComplete
	}

	room.Phase = model.PhaseComplete

	if err := u.storage.Save(ctx, room); err != nil {
		return model.CompleteView{}, errors.Join(ErrStoreUnavailable, err)
	}

	return room.CompleteView(), nil
}

// Reset starts a new round: clears every vote, keeps every member.
// Legal in any phase.
func (u *Usecase) Reset(ctx context.Context, roomID model.RoomID, token model.MemberToken) (model.VotingView, error) {
	room, err := u.loadRoom(ctx, roomID)
	if err != nil {
		return model.VotingView{}, err
	}

	if !room.HasMember(token) {
		return model.VotingView{}, ErrNotAMember
	}

	room.ClearVotes()

	if err := u.storage.Save(ctx, room); err != nil {
		return model.VotingView{}, errors.Join(ErrStoreUnavailable, err)
	}

	return room.VotingView(), nil
}

func (u *Usecase) loadRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error) {
	room, err := u.storage.Load(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return room, nil
}

func (u *Usecase) buildRoomID() model.RoomID {
	return model.RoomID(uuid.New().String())
}

func (u *Usecase) buildMemberToken() model.MemberToken {
	return model.MemberToken(uuid.New().String())
}
