package bot

import "sync"

type convState string

const (
	stateIdle              convState = "idle"
	stateAwaitingSeparator convState = "awaiting_separator"
)

// conversation tracks where each user is in the separator dialogue. Every
// user starts idle; there is no terminal state.
type conversation struct {
	mu     sync.Mutex
	states map[int64]convState
}

func newConversation() *conversation {
	return &conversation{states: make(map[int64]convState)}
}

func (c *conversation) get(userID int64) convState {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.states[userID]; ok {
		return s
	}
	return stateIdle
}

func (c *conversation) set(userID int64, s convState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s == stateIdle {
		delete(c.states, userID)
		return
	}
	c.states[userID] = s
}
