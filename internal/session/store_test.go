package session_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kberg/flashdeck/internal/card"
	"github.com/kberg/flashdeck/internal/session"
)

func TestStore_PutGetDelete(t *testing.T) {
	store := session.NewStore(time.Hour)

	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(2))
	require.NoError(t, err)
	store.Put(sess)

	got, ok := store.Get(sess.Token)
	require.True(t, ok)
	assert.Same(t, sess, got)
	assert.Equal(t, 1, store.Len())

	_, ok = store.Get(uuid.New())
	assert.False(t, ok)

	store.Delete(sess.Token)
	_, ok = store.Get(sess.Token)
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

func TestStore_SweepRemovesIdleSessions(t *testing.T) {
	store := session.NewStore(20 * time.Millisecond)

	stale, err := session.New(1, 1, card.TypeClassic, classicDeck(2))
	require.NoError(t, err)
	store.Put(stale)

	time.Sleep(40 * time.Millisecond)

	fresh, err := session.New(2, 1, card.TypeClassic, classicDeck(2))
	require.NoError(t, err)
	store.Put(fresh)

	removed := store.Sweep()

	assert.Equal(t, 1, removed)
	_, ok := store.Get(stale.Token)
	assert.False(t, ok, "idle session should be gone")
	_, ok = store.Get(fresh.Token)
	assert.True(t, ok, "active session should survive the sweep")
}

func TestStore_SweepKeepsTouchedSessions(t *testing.T) {
	store := session.NewStore(30 * time.Millisecond)

	sess, err := session.New(1, 1, card.TypeClassic, classicDeck(3))
	require.NoError(t, err)
	store.Put(sess)

	// Activity resets the idle clock.
	time.Sleep(20 * time.Millisecond)
	_, err = sess.Advance()
	require.NoError(t, err)
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 0, store.Sweep())
}
