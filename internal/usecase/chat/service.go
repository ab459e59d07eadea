// Package chat answers travel queries: assemble context, build the
// prompt, call the completion provider.
package chat

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/tripweaver/internal/domain"
	"github.com/kailas-cloud/tripweaver/internal/logger"
	"github.com/kailas-cloud/tripweaver/internal/usecase/assemble"
)

// Answer is the user-facing result: generated text plus the context stats
// that produced it.
type Answer struct {
	Text  string
	Stats domain.ContextStats
}

// Service coordinates context assembly and completion.
type Service struct {
	assembler Assembler
	completer Completer
}

// New creates a chat service.
func New(assembler Assembler, completer Completer) *Service {
	return &Service{assembler: assembler, completer: completer}
}

// Ask answers one travel query. Retrieval failures have already degraded
// inside the assembler; only an empty query or a completion provider
// failure surfaces as an error.
func (s *Service) Ask(ctx context.Context, query string) (Answer, error) {
	actx, err := s.assembler.Assemble(ctx, query)
	if err != nil {
		return Answer{}, fmt.Errorf("assemble context: %w", err)
	}

	log := logger.FromContext(ctx)
	log.Info("context assembled",
		zap.Int("matches", actx.Stats.Matches),
		zap.Int("facts", actx.Stats.Facts),
		zap.Int("connections", actx.Stats.Connections),
		zap.String("theme", actx.Stats.Theme),
		zap.Bool("cache_hit", actx.Stats.CacheHit),
		zap.Bool("degraded", actx.Stats.Degraded()),
	)

	text, err := s.completer.Complete(ctx, assemble.BuildPrompt(actx))
	if err != nil {
		return Answer{}, fmt.Errorf("complete: %w", err)
	}

	return Answer{Text: text, Stats: actx.Stats}, nil
}
