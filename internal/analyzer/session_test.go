package analyzer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selectly/internal/domain"
	"selectly/internal/query"
)

func supplier(name, location, price, quality string) domain.Supplier {
	return domain.Supplier{
		domain.FieldName:       name,
		domain.FieldLocation:   location,
		domain.FieldPrice:      price,
		domain.FieldQuality:    quality,
		domain.FieldCompliance: domain.ComplianceNone,
	}
}

func names(shortlist []domain.ScoredSupplier) []string {
	out := make([]string, 0, len(shortlist))
	for _, s := range shortlist {
		out = append(out, s.Supplier[domain.FieldName])
	}
	return out
}

func TestRankSortsDescendingByScore(t *testing.T) {
	suppliers := []domain.Supplier{
		supplier("Low", "Dhaka", "3.5", "4"),
		supplier("High", "Dhaka", "2", "9"),
		supplier("Mid", "Dhaka", "3", "6"),
	}
	got := Rank(suppliers, query.Interpret("সেরা সাপ্লায়ার"))
	require.Equal(t, []string{"High", "Mid", "Low"}, names(got))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRankDefaultLimitFive(t *testing.T) {
	var suppliers []domain.Supplier
	for i := 0; i < 8; i++ {
		suppliers = append(suppliers, supplier(fmt.Sprintf("S%d", i), "Dhaka", "2", fmt.Sprint(i)))
	}
	got := Rank(suppliers, query.Interpret("show me suppliers"))
	assert.Len(t, got, 5)
}

func TestRankCountCappedByAvailability(t *testing.T) {
	suppliers := []domain.Supplier{
		supplier("DhakaOne", "Dhaka", "2", "9"),
		supplier("DhakaTwo", "Dhaka EPZ", "3", "7"),
		supplier("Port", "Chittagong", "2", "8"),
	}
	got := Rank(suppliers, query.Interpret("top 3 Dhaka suppliers"))
	assert.Equal(t, []string{"DhakaOne", "DhakaTwo"}, names(got))
}

func TestRankEmptyFilteredSet(t *testing.T) {
	suppliers := []domain.Supplier{supplier("Port", "Chittagong", "2", "8")}
	got := Rank(suppliers, query.Interpret("dhaka suppliers"))
	assert.Empty(t, got)
}

func TestRankFilteringIsIdempotent(t *testing.T) {
	suppliers := []domain.Supplier{
		supplier("A", "Dhaka", "2", "9"),
		supplier("B", "Chittagong", "3", "8"),
		supplier("C", "Dhaka", "4", "6"),
	}
	plan := query.Interpret("dhaka quality suppliers")
	first := Rank(suppliers, plan)
	second := Rank(suppliers, plan)
	assert.Equal(t, names(first), names(second))
}

func TestRankDoesNotMutateInput(t *testing.T) {
	suppliers := []domain.Supplier{
		supplier("B", "Dhaka", "3", "4"),
		supplier("A", "Dhaka", "2", "9"),
	}
	Rank(suppliers, query.Interpret("cheap suppliers"))
	assert.Equal(t, "B", suppliers[0][domain.FieldName])
	assert.Equal(t, "A", suppliers[1][domain.FieldName])
}

// The low-price trigger pre-sorts candidates before scoring. The score
// sort then re-orders, so the pre-sort is visible only through ties: with
// equal scores, the cheaper supplier comes first.
func TestRankPricePreSortDecidesTies(t *testing.T) {
	expensive := supplier("Expensive", "Dhaka", "3", "5")
	expensive[domain.FieldReliability] = "25" // offsets the 2.5 price-score gap
	cheap := supplier("Cheap", "Dhaka", "2", "5")

	with := Rank([]domain.Supplier{expensive, cheap}, query.Interpret("cheap suppliers"))
	require.Len(t, with, 2)
	assert.InDelta(t, with[0].Score, with[1].Score, 1e-9)
	assert.Equal(t, []string{"Cheap", "Expensive"}, names(with))

	without := Rank([]domain.Supplier{expensive, cheap}, query.Interpret("suppliers"))
	assert.Equal(t, []string{"Expensive", "Cheap"}, names(without))
}

type fakeEnricher struct {
	insight   string
	err       error
	gotCount  int
	gotAsked  string
	callCount int
}

func (f *fakeEnricher) Insight(_ context.Context, shortlist []domain.ScoredSupplier, question string) (string, error) {
	f.callCount++
	f.gotCount = len(shortlist)
	f.gotAsked = question
	return f.insight, f.err
}

func writeCSV(t *testing.T, rows int) string {
	t.Helper()
	var b []byte
	b = append(b, "Supplier Name,Location,Price per meter (USD),Quality Rating,Sustainability Compliance\n"...)
	for i := 0; i < rows; i++ {
		b = append(b, fmt.Sprintf("Supplier %d,Dhaka,%d,%d,None\n", i, 2+i%3, i%10)...)
	}
	path := filepath.Join(t.TempDir(), "suppliers.csv")
	require.NoError(t, os.WriteFile(path, b, 0o644))
	return path
}

func TestSessionLoadResetsTranscript(t *testing.T) {
	s := NewSession(nil, zerolog.Nop())
	require.NoError(t, s.LoadCSV(writeCSV(t, 4)))
	assert.True(t, s.Loaded())
	assert.Equal(t, "suppliers.csv", s.Source())

	s.Ask(context.Background(), "top 3")
	assert.Len(t, s.Transcript(), 3)

	require.NoError(t, s.LoadCSV(writeCSV(t, 2)))
	transcript := s.Transcript()
	require.Len(t, transcript, 1)
	assert.Equal(t, domain.RoleAssistant, transcript[0].Role)
	assert.Contains(t, transcript[0].Content, "সফলভাবে লোড হয়েছে")
}

func TestSessionAskAppendsTurns(t *testing.T) {
	s := NewSession(nil, zerolog.Nop())
	require.NoError(t, s.LoadCSV(writeCSV(t, 4)))

	turn := s.Ask(context.Background(), "top 3 dhaka")
	assert.Equal(t, domain.RoleAssistant, turn.Role)
	assert.Contains(t, turn.Content, "সেরা 3 টি সাপ্লায়ার")

	transcript := s.Transcript()
	require.Len(t, transcript, 3)
	assert.Equal(t, domain.RoleUser, transcript[1].Role)
	assert.Equal(t, "top 3 dhaka", transcript[1].Content)
	assert.Equal(t, turn, transcript[2])
}

func TestSessionAskWithoutCSV(t *testing.T) {
	s := NewSession(nil, zerolog.Nop())
	turn := s.Ask(context.Background(), "top 5")
	assert.Contains(t, turn.Content, "❌ Error:")
}

func TestSessionEnrichmentAppended(t *testing.T) {
	enricher := &fakeEnricher{insight: "চমৎকার পছন্দ হবে।"}
	s := NewSession(enricher, zerolog.Nop())
	require.NoError(t, s.LoadCSV(writeCSV(t, 6)))

	turn := s.Ask(context.Background(), "best suppliers")
	assert.Contains(t, turn.Content, "💡 **AI Insight:**")
	assert.Contains(t, turn.Content, enricher.insight)
	assert.Equal(t, "best suppliers", enricher.gotAsked)
	// Only the top 3 go into the prompt even though 5 were returned.
	assert.Equal(t, 3, enricher.gotCount)
}

func TestSessionEnrichmentFailureFallsBack(t *testing.T) {
	enricher := &fakeEnricher{err: errors.New("network down")}
	s := NewSession(enricher, zerolog.Nop())
	require.NoError(t, s.LoadCSV(writeCSV(t, 4)))

	turn := s.Ask(context.Background(), "best suppliers")
	assert.Equal(t, 1, enricher.callCount)
	assert.NotContains(t, turn.Content, "AI Insight")
	assert.Contains(t, turn.Content, "সেরা 4 টি সাপ্লায়ার")
	assert.NotContains(t, turn.Content, "Error")
}

func TestSessionTranscriptIsACopy(t *testing.T) {
	s := NewSession(nil, zerolog.Nop())
	require.NoError(t, s.LoadCSV(writeCSV(t, 2)))
	got := s.Transcript()
	got[0] = domain.Turn{Role: domain.RoleUser, Content: "tampered"}
	assert.NotEqual(t, "tampered", s.Transcript()[0].Content)
}
