package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cv-generator/internal/domain"
	"cv-generator/internal/store"
	ai "cv-generator/pkg/ai"
	"cv-generator/pkg/ai/formatters"

	"golang.org/x/sync/errgroup"
)

// TextGenerator rewrites one piece of CV text.
type TextGenerator interface {
	Enhance(ctx context.Context, text string, kind ai.ContentKind) (string, error)
}

var ErrEnhancementInProgress = errors.New("enhancement already in progress")

// ItemFailure names one request of an enhancement run that failed.
type ItemFailure struct {
	Kind  ai.ContentKind `json:"kind"`
	ID    string         `json:"id,omitempty"`
	Error string         `json:"error"`
}

// Report describes what one enhancement run committed.
type Report struct {
	SummaryEnhanced     bool          `json:"summaryEnhanced"`
	ExperiencesEnhanced int           `json:"experiencesEnhanced"`
	Failures            []ItemFailure `json:"failures,omitempty"`
}

// Enhancer runs the enhancement flow for a session: the summary first, then
// every described experience concurrently.
type Enhancer struct {
	gen     TextGenerator
	summary *formatters.SummaryFormatter
	exp     *formatters.ExperienceFormatter
	log     *slog.Logger
}

func NewEnhancer(gen TextGenerator) *Enhancer {
	return &Enhancer{
		gen:     gen,
		summary: formatters.NewSummaryFormatter(),
		exp:     formatters.NewExperienceFormatter(),
		log:     slog.Default().With("component", "enhancer"),
	}
}

// Enhance moves the session to enhancing, runs both steps and always returns
// it to idle.
//
// A failed summary request aborts the run. The experience batch is
// all-or-nothing: if any request fails no description is changed. A summary
// that was already committed stays committed when the batch fails.
func (e *Enhancer) Enhance(ctx context.Context, s *store.Session) (Report, error) {
	if !s.BeginEnhance() {
		return Report{}, ErrEnhancementInProgress
	}
	defer s.EndEnhance()

	// an in-flight run is never cancelled by the caller going away
	ctx = context.WithoutCancel(ctx)
	log := e.log.With("session", s.ID.String())

	var rep Report
	snap := s.Snapshot()

	if summary := snap.Personal.Summary; summary != "" {
		out, err := e.gen.Enhance(ctx, e.summary.Label(summary), ai.KindSummary)
		if err != nil {
			log.Error("summary enhancement failed", "error", err)
			rep.Failures = append(rep.Failures, ItemFailure{Kind: ai.KindSummary, Error: err.Error()})
			return rep, fmt.Errorf("enhance summary: %w", err)
		}
		s.Apply(func(cv domain.CV) domain.CV {
			return store.SetPersonalInfo(cv, store.PersonalPatch{Summary: &out})
		})
		rep.SummaryEnhanced = true
	}

	var targets []domain.Experience
	for _, exp := range snap.Experiences {
		if exp.Description != "" {
			targets = append(targets, exp)
		}
	}
	if len(targets) == 0 {
		log.Info("enhancement completed", "summary", rep.SummaryEnhanced, "experiences", 0)
		return rep, nil
	}

	results := make([]string, len(targets))
	errs := make([]error, len(targets))

	var g errgroup.Group
	for i, exp := range targets {
		i, exp := i, exp
		g.Go(func() error {
			label := e.exp.Label(exp.Company, exp.JobTitle, exp.Description)
			out, err := e.gen.Enhance(ctx, label, ai.KindExperience)
			if err != nil {
				errs[i] = err
				return fmt.Errorf("enhance experience %s: %w", exp.ID, err)
			}
			results[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		for i, ferr := range errs {
			if ferr != nil {
				rep.Failures = append(rep.Failures, ItemFailure{Kind: ai.KindExperience, ID: targets[i].ID, Error: ferr.Error()})
			}
		}
		log.Error("experience enhancement failed", "failed", len(rep.Failures), "total", len(targets), "error", err)
		return rep, err
	}

	// merge by id: removed records are skipped, and a description the user
	// changed while the batch was in flight is kept
	applied := 0
	s.Apply(func(cv domain.CV) domain.CV {
		current := make(map[string]string, len(cv.Experiences))
		for _, exp := range cv.Experiences {
			current[exp.ID] = exp.Description
		}
		for i, exp := range targets {
			if d, ok := current[exp.ID]; !ok || d != exp.Description {
				continue
			}
			cv = store.UpdateExperience(cv, exp.ID, "description", results[i])
			applied++
		}
		return cv
	})
	rep.ExperiencesEnhanced = applied

	log.Info("enhancement completed", "summary", rep.SummaryEnhanced, "experiences", rep.ExperiencesEnhanced)
	return rep, nil
}
