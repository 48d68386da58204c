package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cv-generator/internal/domain"
	"cv-generator/internal/store"
	ai "cv-generator/pkg/ai"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	text string
	kind ai.ContentKind
}

// fakeGenerator answers "enhanced <text>" unless the input contains one of
// the fail markers.
type fakeGenerator struct {
	mu    sync.Mutex
	calls []call
	fail  []string
	block chan struct{}
}

func (f *fakeGenerator) Enhance(ctx context.Context, text string, kind ai.ContentKind) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{text: text, kind: kind})
	f.mu.Unlock()

	if f.block != nil {
		<-f.block
	}
	for _, m := range f.fail {
		if strings.Contains(text, m) {
			return "", errors.New("API request failed: 500")
		}
	}
	return "enhanced " + text, nil
}

func (f *fakeGenerator) kinds() map[ai.ContentKind]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[ai.ContentKind]int{}
	for _, c := range f.calls {
		out[c.kind]++
	}
	return out
}

func seeded(t *testing.T, summary string, descriptions ...string) (*store.Session, []string) {
	t.Helper()
	s := store.NewRegistry().Create()
	var ids []string
	s.Apply(func(cv domain.CV) domain.CV {
		cv = store.SetPersonalInfo(cv, store.PersonalPatch{Summary: &summary})
		for i, d := range descriptions {
			var id string
			cv, id = store.AddExperience(cv)
			cv = store.UpdateExperience(cv, id, "company", "Acme")
			cv = store.UpdateExperience(cv, id, "jobTitle", "Engineer "+string(rune('A'+i)))
			cv = store.UpdateExperience(cv, id, "description", d)
			ids = append(ids, id)
		}
		return cv
	})
	return s, ids
}

func TestEnhance_UpdatesSummaryAndDescribedExperiences(t *testing.T) {
	gen := &fakeGenerator{}
	s, ids := seeded(t, "I build things", "shipped X", "")

	rep, err := NewEnhancer(gen).Enhance(context.Background(), s)
	require.NoError(t, err)

	assert.True(t, rep.SummaryEnhanced)
	assert.Equal(t, 1, rep.ExperiencesEnhanced)
	assert.Empty(t, rep.Failures)

	cv := s.Snapshot()
	assert.Equal(t, "enhanced Professional Summary: I build things", cv.Personal.Summary)
	assert.Equal(t, "enhanced Job Experience at Acme as Engineer A: shipped X", cv.Experiences[0].Description)
	assert.Equal(t, ids[1], cv.Experiences[1].ID)
	assert.Empty(t, cv.Experiences[1].Description)

	assert.Equal(t, map[ai.ContentKind]int{ai.KindSummary: 1, ai.KindExperience: 1}, gen.kinds())
	assert.False(t, s.Enhancing())
}

func TestEnhance_EmptyCVMakesNoRequests(t *testing.T) {
	gen := &fakeGenerator{}
	s := store.NewRegistry().Create()

	rep, err := NewEnhancer(gen).Enhance(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, Report{}, rep)
	assert.Empty(t, gen.kinds())
	assert.Equal(t, domain.NewCV(), s.Snapshot())
}

func TestEnhance_SummaryFailureAborts(t *testing.T) {
	gen := &fakeGenerator{fail: []string{"Professional Summary"}}
	s, _ := seeded(t, "I build things", "shipped X")

	rep, err := NewEnhancer(gen).Enhance(context.Background(), s)
	require.Error(t, err)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, ai.KindSummary, rep.Failures[0].Kind)

	cv := s.Snapshot()
	assert.Equal(t, "I build things", cv.Personal.Summary)
	assert.Equal(t, "shipped X", cv.Experiences[0].Description)
	assert.Equal(t, 0, gen.kinds()[ai.KindExperience])
	assert.False(t, s.Enhancing())
}

func TestEnhance_ExperienceBatchIsAllOrNothing(t *testing.T) {
	gen := &fakeGenerator{fail: []string{"Engineer B"}}
	s, ids := seeded(t, "I build things", "shipped X", "shipped Y")

	rep, err := NewEnhancer(gen).Enhance(context.Background(), s)
	require.Error(t, err)

	// the summary commit survives a failed batch
	assert.True(t, rep.SummaryEnhanced)
	assert.Equal(t, 0, rep.ExperiencesEnhanced)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, ai.KindExperience, rep.Failures[0].Kind)
	assert.Equal(t, ids[1], rep.Failures[0].ID)

	cv := s.Snapshot()
	assert.Equal(t, "enhanced Professional Summary: I build things", cv.Personal.Summary)
	assert.Equal(t, "shipped X", cv.Experiences[0].Description)
	assert.Equal(t, "shipped Y", cv.Experiences[1].Description)
	assert.Equal(t, 2, gen.kinds()[ai.KindExperience])
}

func TestEnhance_RejectsConcurrentRun(t *testing.T) {
	gen := &fakeGenerator{block: make(chan struct{})}
	s, _ := seeded(t, "I build things")
	e := NewEnhancer(gen)

	done := make(chan error, 1)
	go func() {
		_, err := e.Enhance(context.Background(), s)
		done <- err
	}()

	require.Eventually(t, func() bool { return len(gen.kinds()) == 1 }, time.Second, 5*time.Millisecond)
	assert.True(t, s.Enhancing())

	_, err := e.Enhance(context.Background(), s)
	assert.ErrorIs(t, err, ErrEnhancementInProgress)

	close(gen.block)
	require.NoError(t, <-done)
	assert.False(t, s.Enhancing())
}

func TestEnhance_IgnoresCallerCancellation(t *testing.T) {
	gen := &fakeGenerator{}
	s, _ := seeded(t, "I build things", "shipped X")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep, err := NewEnhancer(gen).Enhance(ctx, s)
	require.NoError(t, err)
	assert.True(t, rep.SummaryEnhanced)
	assert.Equal(t, 1, rep.ExperiencesEnhanced)
}

func TestEnhance_MergesByIDAroundConcurrentEdits(t *testing.T) {
	gen := &fakeGenerator{block: make(chan struct{})}
	s, ids := seeded(t, "", "shipped X", "shipped Y")

	done := make(chan error, 1)
	go func() {
		_, err := NewEnhancer(gen).Enhance(context.Background(), s)
		done <- err
	}()
	require.Eventually(t, func() bool { return gen.kinds()[ai.KindExperience] == 2 }, time.Second, 5*time.Millisecond)

	// edit and remove records while the batch is in flight
	s.Apply(func(cv domain.CV) domain.CV {
		cv = store.UpdateExperience(cv, ids[0], "location", "Remote")
		return store.RemoveExperience(cv, ids[1])
	})
	close(gen.block)
	require.NoError(t, <-done)

	cv := s.Snapshot()
	require.Len(t, cv.Experiences, 1)
	assert.Equal(t, "Remote", cv.Experiences[0].Location)
	assert.Equal(t, "enhanced Job Experience at Acme as Engineer A: shipped X", cv.Experiences[0].Description)
}

func TestEnhance_KeepsDescriptionEditedDuringBatch(t *testing.T) {
	gen := &fakeGenerator{block: make(chan struct{})}
	s, ids := seeded(t, "", "shipped X", "shipped Y")

	type result struct {
		rep Report
		err error
	}
	done := make(chan result, 1)
	go func() {
		rep, err := NewEnhancer(gen).Enhance(context.Background(), s)
		done <- result{rep, err}
	}()
	require.Eventually(t, func() bool { return gen.kinds()[ai.KindExperience] == 2 }, time.Second, 5*time.Millisecond)

	s.Apply(func(cv domain.CV) domain.CV {
		return store.UpdateExperience(cv, ids[1], "description", "rewritten by hand")
	})
	close(gen.block)
	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, 1, res.rep.ExperiencesEnhanced)

	cv := s.Snapshot()
	assert.Equal(t, "enhanced Job Experience at Acme as Engineer A: shipped X", cv.Experiences[0].Description)
	assert.Equal(t, "rewritten by hand", cv.Experiences[1].Description)
}
