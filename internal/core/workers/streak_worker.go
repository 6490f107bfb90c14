package workers

import (
	"context"
	"log"
	"time"

	"github.com/habitzen/habitzen-engine/internal/core/analyzer"
	"github.com/habitzen/habitzen-engine/internal/core/domain"
)

const DefaultWindowDays = 90

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateStreaks(ctx context.Context, id string, state domain.StreakState) error
}

type CompletionRepository interface {
	ListByUserID(ctx context.Context, userID, from, to string) ([]*domain.Completion, error)
}

type StreakJob struct {
	UserID string
}

// StreakWorker refreshes the streak copy stored on the user row.
// The copy is only read by friend lists, the source of truth stays the completions.
type StreakWorker struct {
	userRepo       UserRepository
	completionRepo CompletionRepository
	jobs           chan StreakJob
	windowDays     int
	loc            *time.Location
	now            func() time.Time
}

func NewStreakWorker(uRepo UserRepository, cRepo CompletionRepository, windowDays int, clock func() time.Time, loc *time.Location) *StreakWorker {
	if windowDays < 1 {
		windowDays = DefaultWindowDays
	}
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &StreakWorker{
		userRepo:       uRepo,
		completionRepo: cRepo,
		jobs:           make(chan StreakJob, 100),
		windowDays:     windowDays,
		loc:            loc,
		now:            clock,
	}
}

func (w *StreakWorker) Start(ctx context.Context) {
	go func() {
		log.Println("[WORKER] streak worker started")
		for {
			select {
			case job := <-w.jobs:
				if err := w.Process(ctx, job.UserID); err != nil {
					log.Printf("[WORKER] streak refresh failed for user %s: %v", job.UserID, err)
				}
			case <-ctx.Done():
				log.Println("[WORKER] streak worker shutting down")
				return
			}
		}
	}()
}

func (w *StreakWorker) Enqueue(userID string) {
	select {
	case w.jobs <- StreakJob{UserID: userID}:
	default:
		log.Printf("[WORKER] queue full, dropping streak job for user %s", userID)
	}
}

// Process recomputes the user's streaks and writes them only when they changed.
func (w *StreakWorker) Process(ctx context.Context, userID string) error {
	user, err := w.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	today := domain.Today(w.now(), w.loc)
	from := domain.FormatDate(today.AddDate(0, 0, -(w.windowDays - 1)))

	completions, err := w.completionRepo.ListByUserID(ctx, userID, from, domain.FormatDate(today))
	if err != nil {
		return err
	}

	state, err := analyzer.Streaks(domain.Records(completions), today)
	if err != nil {
		return err
	}

	// The stored copy is an output only. Best streak is the best run inside the window.
	if state == user.StreakState {
		return nil
	}

	if err := w.userRepo.UpdateStreaks(ctx, userID, state); err != nil {
		return err
	}
	log.Printf("[WORKER] streaks updated for %s: current=%d best=%d", user.Username, state.CurrentStreak, state.BestStreak)
	return nil
}
