package store

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"sarb.backend/internal/console/listparse"
	"sarb.backend/pkg/apiclient"
	"sarb.backend/pkg/logger"
)

// State is a snapshot of a slice. An empty Error means no error.
type State[T any] struct {
	Items   []T
	Loading bool
	Error   string
}

// Messages are the per-operation fallbacks shown when the server gives no
// message of its own.
type Messages struct {
	Fetch  string
	Create string
	Update string
	Delete string
}

func MessagesFor(singular, plural string) Messages {
	return Messages{
		Fetch:  "Failed to fetch " + plural,
		Create: "Failed to add " + singular,
		Update: "Failed to update " + singular,
		Delete: "Failed to delete " + singular,
	}
}

type Option func(*sliceOptions)

type sliceOptions struct {
	sequenced bool
}

// WithSequencedUpdates drops an update response when a later-issued update
// for the same id has already been applied. Without it the last response to
// arrive wins.
func WithSequencedUpdates() Option {
	return func(o *sliceOptions) { o.sequenced = true }
}

// Slice holds the client-side copy of one resource collection. Network calls
// run outside the lock; every state write is serialized.
type Slice[T Identifiable] struct {
	name      string
	res       Resource[T]
	msgs      Messages
	sequenced bool

	mu       sync.Mutex
	items    []T
	inflight int
	err      string
	issued   uint64
	applied  map[int64]uint64
}

func NewSlice[T Identifiable](name string, res Resource[T], msgs Messages, opts ...Option) *Slice[T] {
	var o sliceOptions
	for _, opt := range opts {
		opt(&o)
	}
	return &Slice[T]{
		name:      name,
		res:       res,
		msgs:      msgs,
		sequenced: o.sequenced,
		items:     []T{},
		applied:   map[int64]uint64{},
	}
}

// State returns a copy of the current state.
func (s *Slice[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]T, len(s.items))
	copy(items, s.items)
	return State[T]{Items: items, Loading: s.inflight > 0, Error: s.err}
}

// Fetch replaces the items with the server's list.
func (s *Slice[T]) Fetch(ctx context.Context) error {
	s.begin()
	items, err := s.res.List(ctx)
	if err != nil {
		s.fail(ctx, "fetch", err, s.msgs.Fetch)
		return err
	}

	s.mu.Lock()
	s.items = items
	s.inflight--
	s.mu.Unlock()
	return nil
}

// Create appends the entity the server returns.
func (s *Slice[T]) Create(ctx context.Context, payload apiclient.Payload) (T, error) {
	s.begin()
	item, err := s.res.Create(ctx, payload)
	if err != nil {
		s.fail(ctx, "create", err, s.msgs.Create)
		return item, err
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.inflight--
	s.mu.Unlock()
	return item, nil
}

// Update replaces the entry whose id matches the returned entity. An entity
// not present in the list leaves the list unchanged.
func (s *Slice[T]) Update(ctx context.Context, id int64, payload apiclient.Payload) (T, error) {
	return s.update(ctx, id, payload, s.msgs.Update)
}

func (s *Slice[T]) update(ctx context.Context, id int64, payload apiclient.Payload, fallback string) (T, error) {
	seq := s.begin()
	item, err := s.res.Update(ctx, id, payload)
	if err != nil {
		s.fail(ctx, "update", err, fallback)
		return item, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--

	itemID := item.GetID()
	if s.sequenced {
		if seq < s.applied[itemID] {
			logger.Debug(ctx, "Discarding stale update response", zap.String("resource", s.name), zap.Int64("id", itemID))
			return item, nil
		}
		s.applied[itemID] = seq
	}
	for i := range s.items {
		if s.items[i].GetID() == itemID {
			s.items[i] = item
			break
		}
	}
	return item, nil
}

// Delete removes the entry with id, keeping the order of the rest.
func (s *Slice[T]) Delete(ctx context.Context, id int64) error {
	s.begin()
	if err := s.res.Delete(ctx, id); err != nil {
		s.fail(ctx, "delete", err, s.msgs.Delete)
		return err
	}

	s.mu.Lock()
	kept := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.inflight--
	s.mu.Unlock()
	return nil
}

// ClearError resets the stored error.
func (s *Slice[T]) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

func (s *Slice[T]) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight++
	s.err = ""
	s.issued++
	return s.issued
}

func (s *Slice[T]) fail(ctx context.Context, op string, err error, fallback string) {
	msg := ErrorMessage(err, fallback)

	s.mu.Lock()
	s.inflight--
	s.err = msg
	s.mu.Unlock()

	logger.Warn(ctx, "Resource request failed",
		zap.String("resource", s.name),
		zap.String("op", op),
		zap.Error(err),
	)
}

// ErrorMessage is the text shown for err: the server's own message when it
// sent one, otherwise fallback.
func ErrorMessage(err error, fallback string) string {
	if msg := apiclient.MessageOf(err); msg != "" {
		return msg
	}
	if errors.Is(err, listparse.ErrUnrecognizedShape) {
		return fallback + ": unexpected response format"
	}
	return fallback
}
