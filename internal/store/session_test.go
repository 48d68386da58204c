package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"cv-generator/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lifecycle(t *testing.T) {
	r := NewRegistry()
	s := r.Create()

	got, err := r.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
	assert.Equal(t, domain.StyleProfessional, got.Snapshot().Style)

	require.NoError(t, r.Delete(s.ID))
	_, err = r.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, r.Delete(uuid.New()), ErrSessionNotFound)
}

func TestSession_ApplyIsSerialised(t *testing.T) {
	s := NewRegistry().Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Apply(func(cv domain.CV) domain.CV {
				cv, _ = AddSkill(cv)
				return cv
			})
		}()
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Skills, 50)
}

func TestSession_EnhanceFlag(t *testing.T) {
	s := NewRegistry().Create()
	assert.False(t, s.Enhancing())
	assert.True(t, s.BeginEnhance())
	assert.False(t, s.BeginEnhance())
	assert.True(t, s.Enhancing())
	s.EndEnhance()
	assert.True(t, s.BeginEnhance())
}

func TestRegistry_SweepEvictsIdleSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRegistry()
	r.now = func() time.Time { return now }

	stale := r.Create()
	used := r.Create()
	busy := r.Create()
	require.True(t, busy.BeginEnhance())

	now = now.Add(90 * time.Minute)
	_, err := r.Get(used.ID)
	require.NoError(t, err)

	now = now.Add(45 * time.Minute)
	assert.Equal(t, 1, r.Sweep(time.Hour))

	_, err = r.Get(stale.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = r.Get(used.ID)
	assert.NoError(t, err)
	_, err = r.Get(busy.ID)
	assert.NoError(t, err)
}

func TestRegistry_RunJanitorStopsWithContext(t *testing.T) {
	r := NewRegistry()
	r.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.RunJanitor(ctx, time.Millisecond, 0)
		close(done)
	}()

	require.Eventually(t, func() bool { return r.Len() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
}
