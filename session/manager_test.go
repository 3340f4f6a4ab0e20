package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zaidqureshi-dev/menuorder-api/checkout"
)

func TestManager_CreateAndWith(t *testing.T) {
	m := NewManager()
	defer m.Close()

	s := m.Create("")
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	var seen *checkout.Session
	err := m.With(s.ID, func(got *checkout.Session) error {
		seen = got
		return nil
	})
	require.NoError(t, err)
	assert.Same(t, s, seen)
}

func TestManager_WithUnknownID(t *testing.T) {
	m := NewManager()
	defer m.Close()

	err := m.With("nope", func(*checkout.Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_WithRefreshesIdleTimer(t *testing.T) {
	m := NewManager()
	defer m.Close()

	s := m.Create("")
	s.LastSeen = time.Now().Add(-time.Hour)

	require.NoError(t, m.With(s.ID, func(*checkout.Session) error { return nil }))
	assert.WithinDuration(t, time.Now(), s.LastSeen, time.Second)
}

func TestManager_Delete(t *testing.T) {
	m := NewManager()
	defer m.Close()

	s := m.Create("5")
	m.Delete(s.ID)
	assert.Equal(t, 0, m.Len())

	err := m.With(s.ID, func(*checkout.Session) error { return nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestManager_ExpireSweepsIdleSessions(t *testing.T) {
	m := NewManager()
	defer m.Close()

	stale := m.Create("")
	fresh := m.Create("")
	stale.LastSeen = time.Now().Add(-SessionTTL - time.Minute)

	m.expireSessions()

	assert.Equal(t, 1, m.Len())
	assert.ErrorIs(t, m.With(stale.ID, func(*checkout.Session) error { return nil }), ErrSessionNotFound)
	assert.NoError(t, m.With(fresh.ID, func(*checkout.Session) error { return nil }))
}

func TestManager_IndependentSessionsDoNotBlock(t *testing.T) {
	m := NewManager()
	defer m.Close()

	a := m.Create("")
	b := m.Create("")

	started := make(chan struct{})
	release := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = m.With(a.ID, func(*checkout.Session) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	// a's callback is still running; b must get through regardless
	begin := time.Now()
	require.NoError(t, m.With(b.ID, func(*checkout.Session) error { return nil }))
	assert.Less(t, time.Since(begin), 100*time.Millisecond)

	close(release)
	<-done
}

func TestManager_SameSessionSerializes(t *testing.T) {
	m := NewManager()
	defer m.Close()

	s := m.Create("")

	const workers = 8
	var wg sync.WaitGroup
	counter := 0 // unguarded on purpose; With must serialize the callbacks
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = m.With(s.ID, func(*checkout.Session) error {
				counter++
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, workers, counter)
}

func TestManager_TableSession(t *testing.T) {
	m := NewManager()
	defer m.Close()

	s := m.Create("9")
	assert.True(t, s.IsTable)
	assert.Equal(t, "9", s.TableNumber)
}
