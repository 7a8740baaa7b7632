package model

import (
	"encoding/json"
	"time"
)

// MemberStatusView hides the vote value and only tells whether the
// member has voted.
type MemberStatusView struct {
	Name     string `json:"name"`
	HasVoted bool   `json:"has_voted"`
}

// MemberVoteView carries the revealed vote. Vote stays null for
// members who never voted this round.
type MemberVoteView struct {
	Name string `json:"name"`
	Vote *int   `json:"vote"`
}

type VotingView struct {
	ID         RoomID                          `json:"id"`
	Name       string                          `json:"name"`
	Phase      Phase                           `json:"phase"`
	Deck       DeckKind                        `json:"deck"`
	DeckValues []int                           `json:"deck_values"`
	CreatedAt  time.Time                       `json:"created_at"`
	Members    map[MemberToken]MemberStatusView `json:"members"`
}

type CompleteView struct {
	ID         RoomID                        `json:"id"`
	Name       string                        `json:"name"`
	Phase      Phase                         `json:"phase"`
	Deck       DeckKind                      `json:"deck"`
	DeckValues []int                         `json:"deck_values"`
	CreatedAt  time.Time                     `json:"created_at"`
	Members    map[MemberToken]MemberVoteView `json:"members"`
}

// RoomView is a tagged variant over the two projections. Exactly one
// of Voting/Complete is set; Phase is the discriminant.
type RoomView struct {
	Phase    Phase
	Voting   *VotingView
	Complete *CompleteView
}

func (v RoomView) MarshalJSON() ([]byte, error) {
	if v.Phase == PhaseComplete {
		return json.Marshal(v.Complete)
	}
	return json.Marshal(v.Voting)
}

func (r *Room) VotingView() VotingView {
	members := make(map[MemberToken]MemberStatusView, len(r.Members))
	for token, m := range r.Members {
		members[token] = MemberStatusView{
			Name:     m.Name,
			HasVoted: m.Vote != nil,
		}
	}

	return VotingView{
		ID:         r.ID,
		Name:       r.Name,
		Phase:      r.Phase,
		Deck:       r.Deck,
		DeckValues: r.Deck.Values(),
		CreatedAt:  r.CreatedAt,
		Members:    members,
	}
}

func (r *Room) CompleteView() CompleteView {
	members := make(map[MemberToken]MemberVoteView, len(r.Members))
	for token, m := range r.Members {
		var vote *int
		if m.Vote != nil {
			v := *m.Vote
			vote = &v
		}
		members[token] = MemberVoteView{
			Name: m.Name,
			Vote: vote,
		}
	}

	return CompleteView{
		ID:         r.ID,
		Name:       r.Name,
		Phase:      r.Phase,
		Deck:       r.Deck,
		DeckValues: r.Deck.Values(),
		CreatedAt:  r.CreatedAt,
		Members:    members,
	}
}

// View picks the projection matching the current phase.
func (r *Room) View() RoomView {
	if r.Phase == PhaseComplete {
		cv := r.CompleteView()
		return RoomView{Phase: PhaseComplete, Complete: &cv}
	}
	vv := r.VotingView()
	return RoomView{Phase: PhaseVoting, Voting: &vv}
}
