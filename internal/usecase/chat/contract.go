package chat

import (
	"context"

	"github.com/kailas-cloud/tripweaver/internal/domain"
)

// Assembler builds the retrieval context for a query.
type Assembler interface {
	Assemble(ctx context.Context, queryText string) (domain.AssembledContext, error)
}

// Completer turns a prompt into generated itinerary text.
type Completer interface {
	Complete(ctx context.Context, prompt domain.Prompt) (string, error)
}
