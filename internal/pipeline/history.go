package pipeline

import (
	"sync"

	"github.com/wayfinder-support/wayfinder/internal/model"
)

// History tracks each user's observed journey stages, bounded to the most
// recent maxStages entries per user. Entries are independent per key; the
// outer lock only guards the map itself, so concurrent requests from
// different users never contend.
type History struct {
	mu    sync.RWMutex
	max   int
	users map[string]*userHistory
}

type userHistory struct {
	mu     sync.Mutex
	stages []model.Stage
}

// NewHistory creates a history store keeping at most max stages per user
func NewHistory(max int) *History {
	if max <= 0 {
		max = 20
	}
	return &History{
		max:   max,
		users: make(map[string]*userHistory),
	}
}

// Stages returns a copy of the user's stage history, oldest first
func (h *History) Stages(userID string) []model.Stage {
	h.mu.RLock()
	u, ok := h.users[userID]
	h.mu.RUnlock()
	if !ok {
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]model.Stage, len(u.stages))
	copy(out, u.stages)
	return out
}

// Append records a newly observed stage for the user, evicting the oldest
// entry when the ring is full
func (h *History) Append(userID string, stage model.Stage) {
	h.mu.Lock()
	u, ok := h.users[userID]
	if !ok {
		u = &userHistory{}
		h.users[userID] = u
	}
	h.mu.Unlock()

	u.mu.Lock()
	defer u.mu.Unlock()
	u.stages = append(u.stages, stage)
	if len(u.stages) > h.max {
		u.stages = u.stages[len(u.stages)-h.max:]
	}
}

// Users returns the number of users with recorded history
func (h *History) Users() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users)
}
