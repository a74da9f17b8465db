package nav

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

// Slot names a stream of requests whose results compete with each other.
type Slot int

const (
	// SlotScreen fetches whatever produces the next screen.
	SlotScreen Slot = iota
	// SlotItems fetches items into the current screen: load more, in-place
	// refresh, a post's comments.
	SlotItems
	// SlotAction carries votes, saves and other writes. Several may be in
	// flight at once.
	SlotAction
)

func (s Slot) String() string {
	switch s {
	case SlotItems:
		return "items"
	case SlotAction:
		return "action"
	default:
		return "screen"
	}
}

// exclusive reports whether a new request on s supersedes the previous one.
func (s Slot) exclusive() bool { return s != SlotAction }

// Request is the correlation tag a worker carries back with its result.
type Request struct {
	Slot  Slot
	ID    uuid.UUID
	Event Event // Screen to record once the result is shown
	Page  int   // Page requested, for paginated fetches
	Reset bool  // The accepted page replaces the list
	Amend bool  // Replace the top history entry instead of pushing
}

// Result is the single message a dispatched operation delivers.
type Result[T any] struct {
	Req   Request
	Value T
	Err   error
}

// Dispatch runs op on a worker and delivers exactly one Result[T]. op must
// capture only values. A panic inside op becomes an internal error result.
func Dispatch[T any](req Request, op func(ctx context.Context) (T, error)) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = Result[T]{Req: req, Err: &domain.APIError{
					Kind: domain.ErrorKindInternal,
					Err:  fmt.Errorf("worker panic: %v", r),
				}}
			}
		}()
		v, err := op(context.Background())
		return Result[T]{Req: req, Value: v, Err: err}
	}
}

// Tracker decides which results are still live. Every result is accepted at
// most once.
type Tracker struct {
	live    map[Slot]uuid.UUID
	actions map[uuid.UUID]struct{}
}

// Begin issues a request on slot. On an exclusive slot it supersedes the
// previous request; beginning a screen request also supersedes item loads.
func (t *Tracker) Begin(slot Slot) Request {
	if t.live == nil {
		t.live = make(map[Slot]uuid.UUID)
		t.actions = make(map[uuid.UUID]struct{})
	}
	req := Request{Slot: slot, ID: uuid.New()}
	if !slot.exclusive() {
		t.actions[req.ID] = struct{}{}
		return req
	}
	if slot == SlotScreen {
		delete(t.live, SlotItems)
	}
	t.live[slot] = req.ID
	return req
}

// Accept reports whether req is live and retires it.
func (t *Tracker) Accept(req Request) bool {
	if !req.Slot.exclusive() {
		if _, ok := t.actions[req.ID]; !ok {
			return false
		}
		delete(t.actions, req.ID)
		return true
	}
	id, ok := t.live[req.Slot]
	if !ok || id != req.ID {
		return false
	}
	delete(t.live, req.Slot)
	return true
}

// Pending reports whether slot has a live request.
func (t *Tracker) Pending(slot Slot) bool {
	if !slot.exclusive() {
		return len(t.actions) > 0
	}
	_, ok := t.live[slot]
	return ok
}

// Cancel retires the live requests on the given exclusive slots.
func (t *Tracker) Cancel(slots ...Slot) {
	for _, s := range slots {
		delete(t.live, s)
	}
}

// Reset retires everything in flight, actions included.
func (t *Tracker) Reset() {
	clear(t.live)
	clear(t.actions)
}
