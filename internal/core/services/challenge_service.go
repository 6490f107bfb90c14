package services

import (
	"context"
	"fmt"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

type ChallengeService struct {
	challenges domain.ChallengeRepository
	friends    domain.FriendRepository
	cal        calendar
}

func NewChallengeService(challenges domain.ChallengeRepository, friends domain.FriendRepository, clock Clock, loc *time.Location) *ChallengeService {
	return &ChallengeService{
		challenges: challenges,
		friends:    friends,
		cal:        newCalendar(clock, loc),
	}
}

type CreateChallengeInput struct {
	UserID       string
	Title        string
	Description  string
	DurationDays int
	IsPrivate    bool
	FriendIDs    []string
}

// Create starts a challenge today with the creator and the invited friends as participants.
func (s *ChallengeService) Create(ctx context.Context, input CreateChallengeInput) (*domain.Challenge, error) {
	challenge, err := domain.NewChallenge(input.UserID, input.Title, input.Description, input.DurationDays, input.IsPrivate, s.cal.today())
	if err != nil {
		return nil, err
	}

	invitees := make([]string, 0, len(input.FriendIDs))
	seen := map[string]struct{}{input.UserID: {}}
	for _, id := range input.FriendIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		invitees = append(invitees, id)
	}
	if len(invitees) == 0 {
		return nil, domain.ErrChallengeNoInvitees
	}

	for _, id := range invitees {
		if err := s.requireFriend(ctx, input.UserID, id); err != nil {
			return nil, err
		}
	}

	participants := append([]string{input.UserID}, invitees...)
	if err := s.challenges.Create(ctx, challenge, participants); err != nil {
		return nil, err
	}
	return s.challenges.GetByID(ctx, challenge.ID)
}

// Get hides private challenges from non-participants.
func (s *ChallengeService) Get(ctx context.Context, userID, challengeID string) (*domain.Challenge, error) {
	c, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !c.VisibleTo(userID) {
		return nil, domain.ErrChallengeNotFound
	}
	return c, nil
}

func (s *ChallengeService) List(ctx context.Context, userID string) ([]*domain.Challenge, error) {
	return s.challenges.ListByParticipant(ctx, userID)
}

// ListPublic returns public challenges that have not ended yet.
func (s *ChallengeService) ListPublic(ctx context.Context) ([]*domain.Challenge, error) {
	return s.challenges.ListPublic(ctx, domain.FormatDate(s.cal.today()), domain.DefaultChallengeLimit)
}

// Invite adds a friend of the caller. Only participants may invite.
func (s *ChallengeService) Invite(ctx context.Context, userID, challengeID, friendID string) (*domain.Challenge, error) {
	c, err := s.challenges.GetByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if !c.HasParticipant(userID) {
		return nil, domain.ErrChallengeNotFound
	}
	if c.Ended(s.cal.today()) {
		return nil, domain.ErrChallengeEnded
	}
	if c.HasParticipant(friendID) {
		return nil, domain.ErrAlreadyParticipant
	}
	if err := s.requireFriend(ctx, userID, friendID); err != nil {
		return nil, err
	}

	if err := s.challenges.AddParticipant(ctx, challengeID, friendID, s.cal.clock().UTC()); err != nil {
		return nil, err
	}
	return s.challenges.GetByID(ctx, challengeID)
}

// Join lets anyone enter a running public challenge. Private ones are invite-only.
func (s *ChallengeService) Join(ctx context.Context, userID, challengeID string) (*domain.Challenge, error) {
	c, err := s.Get(ctx, userID, challengeID)
	if err != nil {
		return nil, err
	}
	if c.HasParticipant(userID) {
		return nil, domain.ErrAlreadyParticipant
	}
	if c.Ended(s.cal.today()) {
		return nil, domain.ErrChallengeEnded
	}

	if err := s.challenges.AddParticipant(ctx, challengeID, userID, s.cal.clock().UTC()); err != nil {
		return nil, err
	}
	return s.challenges.GetByID(ctx, challengeID)
}

func (s *ChallengeService) requireFriend(ctx context.Context, userID, friendID string) error {
	ok, err := s.friends.AreFriends(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFriends, friendID)
	}
	return nil
}
