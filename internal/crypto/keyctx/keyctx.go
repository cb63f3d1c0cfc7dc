// Package keyctx carries the current user's data key through one unit of work.
//
// A unit of work (typically one HTTP request) opens a Scope with Begin or Run. The scope
// holds a private copy of the key in a slot attached to the returned context; field
// codecs read it with Current. The slot is zeroed and emptied when the scope is closed,
// when the parent context is cancelled, or when Run returns or panics. Contexts derived
// from the scoped context share the slot; unrelated contexts never see it.
package keyctx

import (
	"context"
	"sync"

	cryptoDomain "github.com/allisson/fintrack/internal/crypto/domain"
)

type scopeKey struct{}

// Scope owns the key slot of one unit of work.
type Scope struct {
	mu     sync.RWMutex
	key    cryptoDomain.DataKey
	closed bool
	stop   func() bool
}

// Begin opens a scope holding a copy of key and returns the context that carries it.
//
// The scope is closed automatically when ctx is done; callers still close it explicitly
// when the unit of work ends.
func Begin(ctx context.Context, key cryptoDomain.DataKey) (context.Context, *Scope) {
	s := &Scope{key: key.Clone()}
	s.mu.Lock()
	s.stop = context.AfterFunc(ctx, s.Close)
	s.mu.Unlock()
	return context.WithValue(ctx, scopeKey{}, s), s
}

// Run executes fn inside a scope holding key. The slot is cleared on every exit path;
// a panic in fn is re-raised after cleanup.
func Run(ctx context.Context, key cryptoDomain.DataKey, fn func(ctx context.Context) error) error {
	scoped, s := Begin(ctx, key)
	defer s.Close()
	return fn(scoped)
}

// Set replaces the key of the scope carried by ctx.
func Set(ctx context.Context, key cryptoDomain.DataKey) error {
	s := fromContext(ctx)
	if s == nil {
		return cryptoDomain.ErrKeyContextMissing
	}
	return s.Set(key)
}

// Current returns a copy of the key in the scope carried by ctx. The caller zeroes the
// copy when done with it.
func Current(ctx context.Context) (cryptoDomain.DataKey, error) {
	s := fromContext(ctx)
	if s == nil {
		return nil, cryptoDomain.ErrKeyContextMissing
	}
	return s.Current()
}

// Clear zeroes and empties the slot of the scope carried by ctx. It is a no-op when ctx
// carries no scope.
func Clear(ctx context.Context) {
	if s := fromContext(ctx); s != nil {
		s.Clear()
	}
}

// Set replaces the key held by the scope, zeroing the previous copy. It fails with
// ErrKeyContextMissing once the scope is closed.
func (s *Scope) Set(key cryptoDomain.DataKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return cryptoDomain.ErrKeyContextMissing
	}
	s.key.Zero()
	s.key = key.Clone()
	return nil
}

// Current returns a copy of the held key.
func (s *Scope) Current() (cryptoDomain.DataKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.key == nil {
		return nil, cryptoDomain.ErrKeyContextMissing
	}
	return s.key.Clone(), nil
}

// Clear zeroes and empties the slot but keeps the scope open for a later Set.
func (s *Scope) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key.Zero()
	s.key = nil
}

// Close zeroes the slot and ends the scope. It is safe to call more than once and from
// any goroutine.
func (s *Scope) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.key.Zero()
	s.key = nil
	if s.stop != nil {
		s.stop()
	}
}

func fromContext(ctx context.Context) *Scope {
	s, _ := ctx.Value(scopeKey{}).(*Scope)
	return s
}
