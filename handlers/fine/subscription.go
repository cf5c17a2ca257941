package fine

import (
	"sync"
	"sync/atomic"
)

// CaseState tracks a case channel from creation to teardown.
type CaseState int32

const (
	AwaitingClose CaseState = iota
	Closing
	ChannelDeleted
)

func (s CaseState) String() string {
	switch s {
	case AwaitingClose:
		return "AWAITING_CLOSE"
	case Closing:
		return "CLOSING"
	case ChannelDeleted:
		return "CHANNEL_DELETED"
	default:
		return "UNKNOWN"
	}
}

// Subscription is the Close Case listener for one case channel.
// Only the first successful TryClose takes effect.
type Subscription struct {
	ChannelID  string
	FineNumber int64
	state      atomic.Int32
}

// TryClose moves the case from AwaitingClose to Closing. It returns false if another
// activation got there first.
func (s *Subscription) TryClose() bool {
	return s.state.CompareAndSwap(int32(AwaitingClose), int32(Closing))
}

func (s *Subscription) State() CaseState {
	return CaseState(s.state.Load())
}

func (s *Subscription) markDeleted() {
	s.state.Store(int32(ChannelDeleted))
}

// Registry holds the live subscriptions, keyed by case channel ID.
type Registry struct {
	mu   sync.Mutex
	subs map[string]*Subscription
}

func NewRegistry() *Registry {
	return &Registry{subs: make(map[string]*Subscription)}
}

// Register binds fineNumber to channelID. An existing subscription for the channel is kept.
func (r *Registry) Register(channelID string, fineNumber int64) *Subscription {
	return r.Acquire(channelID, fineNumber)
}

// Acquire returns the subscription for channelID, creating one bound to fineNumber if none
// exists. Buttons from before a restart get their subscription this way.
func (r *Registry) Acquire(channelID string, fineNumber int64) *Subscription {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sub, ok := r.subs[channelID]; ok {
		return sub
	}
	sub := &Subscription{ChannelID: channelID, FineNumber: fineNumber}
	r.subs[channelID] = sub
	return sub
}

func (r *Registry) Lookup(channelID string) (*Subscription, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subs[channelID]
	return sub, ok
}

// Remove forgets the subscription once its channel is gone.
func (r *Registry) Remove(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.subs, channelID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.subs)
}
