// Package analyzer owns the per-session state (record set + transcript)
// and the ranking pipeline that answers each question.
package analyzer

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"selectly/internal/csvdata"
	"selectly/internal/domain"
	"selectly/internal/format"
	"selectly/internal/query"
	"selectly/internal/scoring"
)

// ErrNoData is reported when a question arrives before any CSV is loaded.
var ErrNoData = errors.New("no supplier CSV loaded")

// enrichTopN caps how many suppliers go into the enrichment prompt.
const enrichTopN = 3

// Session holds the in-memory supplier set and the conversation
// transcript. Loading a CSV replaces the record set and resets the
// transcript atomically; turns are append-only in between.
type Session struct {
	enricher domain.Enricher
	log      zerolog.Logger

	mu         sync.Mutex
	suppliers  []domain.Supplier
	transcript []domain.Turn
	source     string
}

// NewSession creates an empty session. A nil enricher disables enrichment;
// the core pipeline is unaffected.
func NewSession(enricher domain.Enricher, log zerolog.Logger) *Session {
	return &Session{
		enricher: enricher,
		log:      log.With().Str("session", uuid.NewString()).Logger(),
	}
}

// LoadCSV reads a CSV file, replaces the supplier set wholesale, and
// resets the transcript to the single welcome turn.
func (s *Session) LoadCSV(path string) error {
	suppliers, err := csvdata.ParseFile(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suppliers = suppliers
	s.source = name
	s.transcript = []domain.Turn{{Role: domain.RoleAssistant, Content: format.Welcome(name)}}
	s.log.Info().Str("file", name).Int("rows", len(suppliers)).Msg("csv loaded")
	return nil
}

// Ask answers one question: it appends the user turn, runs the ranking
// pipeline over the current supplier set, attempts enrichment when
// configured, then appends and returns the assistant turn. Core failures
// become a single labeled error turn; enrichment failures are logged and
// discarded.
func (s *Session) Ask(ctx context.Context, question string) domain.Turn {
	// Snapshot the record set and release the lock before evaluating: the
	// enrichment call may take a while and transcript reads must not wait
	// on it. The set is read-only during evaluation.
	s.mu.Lock()
	s.transcript = append(s.transcript, domain.Turn{Role: domain.RoleUser, Content: question})
	suppliers := s.suppliers
	s.mu.Unlock()

	turn := domain.Turn{Role: domain.RoleAssistant, Content: s.answer(ctx, suppliers, question)}
	s.mu.Lock()
	s.transcript = append(s.transcript, turn)
	s.mu.Unlock()
	return turn
}

func (s *Session) answer(ctx context.Context, suppliers []domain.Supplier, question string) string {
	if suppliers == nil {
		return format.Error(ErrNoData)
	}

	plan := query.Interpret(question)
	shortlist := Rank(suppliers, plan)
	reply := format.Shortlist(shortlist)
	s.log.Info().
		Str("question", question).
		Int("candidates", len(suppliers)).
		Int("results", len(shortlist)).
		Int("limit", plan.Limit).
		Msg("query answered")

	if s.enricher != nil {
		top := shortlist
		if len(top) > enrichTopN {
			top = top[:enrichTopN]
		}
		insight, err := s.enricher.Insight(ctx, top, question)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Msg("enrichment failed")
		case insight != "":
			reply += format.InsightLabel + insight
		}
	}
	return reply
}

// Transcript returns a copy of the conversation so far.
func (s *Session) Transcript() []domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Loaded reports whether a CSV has been loaded this session.
func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.suppliers != nil
}

// Source returns the file name of the loaded CSV, if any.
func (s *Session) Source() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Rank runs the full pipeline for one plan: apply the filters in their
// fixed order, optionally pre-sort candidates by ascending price, score
// every survivor, stable-sort descending by score, truncate to the limit.
// The score sort re-orders the price pre-sort, so the pre-sort is
// observable only in tie order.
func Rank(suppliers []domain.Supplier, plan query.Plan) []domain.ScoredSupplier {
	candidates := make([]domain.Supplier, len(suppliers))
	copy(candidates, suppliers)
	for _, f := range plan.Filters {
		kept := candidates[:0]
		for _, c := range candidates {
			if f.Keep(c) {
				kept = append(kept, c)
			}
		}
		candidates = kept
	}
	if plan.PriceAscending {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Float(domain.FieldPrice) < candidates[j].Float(domain.FieldPrice)
		})
	}
	scored := make([]domain.ScoredSupplier, len(candidates))
	for i, c := range candidates {
		scored[i] = domain.ScoredSupplier{Supplier: c, Score: scoring.Score(c)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if plan.Limit < len(scored) {
		scored = scored[:plan.Limit]
	}
	return scored
}
