package webhook

import (
	"context"
	"sort"
	"strings"
)

// EventKind is "<event>.<action>" (for example "pull_request.opened"), or
// just the event name when the payload carries no action.
type EventKind string

const (
	KindPullRequestOpened      EventKind = "pull_request.opened"
	KindPullRequestSynchronize EventKind = "pull_request.synchronize"
	KindPullRequestEdited      EventKind = "pull_request.edited"
	KindIssuesOpened           EventKind = "issues.opened"
	KindIssuesReopened         EventKind = "issues.reopened"
)

func KindOf(event, action string) EventKind {
	if action == "" {
		return EventKind(event)
	}
	return EventKind(event + "." + action)
}

// Event returns the X-GitHub-Event part of the kind.
func (k EventKind) Event() string {
	event, _, _ := strings.Cut(string(k), ".")
	return event
}

// Delivery identifies one webhook request.
type Delivery struct {
	ID    string
	Event string
	Kind  EventKind
}

// Result is what a handler reports back to the delivery response.
type Result struct {
	SuggestedTitle string
}

// Handler processes one parsed payload. payload is the value returned by
// github.ParseWebHook for the delivery's event.
type Handler func(ctx context.Context, payload interface{}, d Delivery) (Result, error)

// Router is the explicit event-kind routing table. It is filled before the
// server starts and only read afterwards.
type Router struct {
	routes map[EventKind]Handler
	events map[string]struct{}
}

func NewRouter() *Router {
	return &Router{
		routes: make(map[EventKind]Handler),
		events: make(map[string]struct{}),
	}
}

func (r *Router) Register(kind EventKind, h Handler) {
	r.routes[kind] = h
	r.events[kind.Event()] = struct{}{}
}

func (r *Router) Lookup(kind EventKind) (Handler, bool) {
	h, ok := r.routes[kind]
	return h, ok
}

// HandlesEvent reports whether any route exists for the X-GitHub-Event value,
// so payloads of unrouted events are never parsed.
func (r *Router) HandlesEvent(event string) bool {
	_, ok := r.events[event]
	return ok
}

func (r *Router) Kinds() []EventKind {
	kinds := make([]EventKind, 0, len(r.routes))
	for k := range r.routes {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
