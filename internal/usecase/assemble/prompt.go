package assemble

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/tripweaver/internal/domain"
)

// Serialization caps keep the prompt inside a predictable token budget.
const (
	promptMatchLimit = 8
	promptFactLimit  = 20
	promptTagLimit   = 3
	promptDescLimit  = 200
)

const systemPreamble = `You are an expert Vietnam travel assistant specializing in creating personalized itineraries.

Your approach:
1. ANALYZE the user's preferences (duration, theme, interests)
2. IDENTIFY the most relevant cities and attractions from the provided context
3. STRUCTURE a day-by-day itinerary with logical flow
4. INCLUDE specific node IDs as references (e.g., [attraction_123])
5. PROVIDE practical tips (travel time, best times to visit)

Format your response as:
- Brief introduction matching the theme
- Day-by-day breakdown with morning/afternoon/evening activities
- Accommodation suggestions
- Practical travel tips

Be concise but detailed. Cite node IDs for credibility.`

// BuildPrompt renders the assembled context into the two-message chat
// prompt: fixed system preamble plus serialized matches, facts, and city
// connections.
func BuildPrompt(actx domain.AssembledContext) domain.Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "User Query: %s\n\n", actx.Query)

	b.WriteString("=== TOP SEMANTIC MATCHES (from vector search) ===\n")
	writeMatches(&b, actx.Matches)

	b.WriteString("\n=== KNOWLEDGE GRAPH RELATIONSHIPS ===\n")
	writeFacts(&b, actx.Facts.Relationships())

	if conns := actx.Facts.Connections(); len(conns) > 0 {
		b.WriteString("\nCity Connections (for multi-day planning):\n")
		for _, c := range conns {
			fmt.Fprintf(&b, "- %s → %s\n", c.From, c.ToName)
		}
	}

	b.WriteString("\nBased on the above context, create a detailed response. " +
		"Use node IDs in [brackets] when referencing specific places.")

	return domain.Prompt{
		System: systemPreamble,
		User:   b.String(),
	}
}

func writeMatches(b *strings.Builder, matches []domain.VectorMatch) {
	if len(matches) == 0 {
		b.WriteString("(no semantic matches)\n")
		return
	}
	if len(matches) > promptMatchLimit {
		matches = matches[:promptMatchLimit]
	}

	for _, m := range matches {
		fmt.Fprintf(b, "- [%s] %s (%s) in %s - Score: %.3f",
			m.EntityID, valueOr(m.Name, "N/A"), valueOr(m.Type, "N/A"), valueOr(m.City, "N/A"), m.Score)
		writeTags(b, m.Tags)
		b.WriteByte('\n')
	}
}

func writeFacts(b *strings.Builder, facts []domain.GraphFact) {
	if len(facts) == 0 {
		b.WriteString("(no graph facts)\n")
		return
	}
	if len(facts) > promptFactLimit {
		facts = facts[:promptFactLimit]
	}

	for _, f := range facts {
		desc := f.Description
		if len(desc) > promptDescLimit {
			desc = desc[:promptDescLimit]
		}
		fmt.Fprintf(b, "- [%s] --%s--> [%s] %s (%s): %s",
			f.From, f.Relation, f.To, f.ToName, valueOr(f.ToType, "N/A"), desc)
		writeTags(b, f.Tags)
		b.WriteByte('\n')
	}
}

func writeTags(b *strings.Builder, tags []string) {
	if len(tags) == 0 {
		return
	}
	if len(tags) > promptTagLimit {
		tags = tags[:promptTagLimit]
	}
	fmt.Fprintf(b, " | Tags: %s", strings.Join(tags, ", "))
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
