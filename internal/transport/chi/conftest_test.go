package chi

import (
	"context"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tripweaver/internal/domain"
	chatuc "github.com/kailas-cloud/tripweaver/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/tripweaver/internal/usecase/health"
)

type mockAssembler struct {
	actx domain.AssembledContext
	err  error
}

func (m *mockAssembler) Assemble(_ context.Context, _ string) (domain.AssembledContext, error) {
	return m.actx, m.err
}

type mockCompleter struct {
	text string
	err  error
}

func (m *mockCompleter) Complete(_ context.Context, _ domain.Prompt) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

func assembledContext() domain.AssembledContext {
	return domain.AssembledContext{
		Query: "romantic hanoi",
		Matches: []domain.VectorMatch{
			{EntityID: "hanoi_spa_1", Score: 0.84, Name: "Lotus Spa", Type: "attraction", City: "Hanoi"},
		},
		Facts: domain.NewFactSet(
			domain.GraphFact{From: "hanoi", Relation: "HAS_ATTRACTION", To: "hanoi_spa_1", ToName: "Lotus Spa"},
		),
		Theme: "romantic",
		Stats: domain.ContextStats{
			Matches: 1, Facts: 1, Theme: "romantic",
			Steps: map[string]domain.StepStatus{domain.StepEmbedding: domain.StepOK},
		},
	}
}

// newTestHandler wires a server over the given mocks with the production
// route layout.
func newTestHandler(asm *mockAssembler, cmp *mockCompleter, db *mockPinger) http.Handler {
	chatSvc := chatuc.New(asm, cmp)
	healthSvc := healthuc.New(db, nil, nil)
	srv := NewServer(chatSvc, healthSvc, zap.NewNop())

	r := gochi.NewRouter()
	srv.Routes(r)
	return r
}
