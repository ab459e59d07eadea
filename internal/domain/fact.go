package domain

// ConnectionRelation is the edge type representing geographic connectivity
// between location entities, used for itinerary sequencing.
const ConnectionRelation = "CONNECTED_TO"

// GraphFact is one relationship row from the graph database.
type GraphFact struct {
	From        string
	Relation    string
	To          string
	ToName      string
	ToType      string
	Description string
	Tags        []string
}

// IsConnection reports whether the fact is a city-to-city connection edge.
func (f GraphFact) IsConnection() bool {
	return f.Relation == ConnectionRelation
}

type factKey struct {
	from, relation, to string
}

// FactSet is a set of graph facts deduplicated by the (from, relation, to)
// triple. Iteration order is insertion order, so repeated assembly over the
// same inputs renders identically.
type FactSet struct {
	keys  map[factKey]struct{}
	facts []GraphFact
}

// NewFactSet creates a fact set from the given facts, dropping duplicates.
func NewFactSet(facts ...GraphFact) *FactSet {
	s := &FactSet{keys: make(map[factKey]struct{}, len(facts))}
	s.Add(facts...)
	return s
}

// Add inserts facts, ignoring any whose (from, relation, to) triple is
// already present. The first occurrence wins.
func (s *FactSet) Add(facts ...GraphFact) {
	for _, f := range facts {
		k := factKey{from: f.From, relation: f.Relation, to: f.To}
		if _, ok := s.keys[k]; ok {
			continue
		}
		s.keys[k] = struct{}{}
		s.facts = append(s.facts, f)
	}
}

// Union merges another set into this one, deduplicating across both.
func (s *FactSet) Union(other *FactSet) {
	if other == nil {
		return
	}
	s.Add(other.facts...)
}

// Facts returns the deduplicated facts in insertion order.
func (s *FactSet) Facts() []GraphFact {
	return s.facts
}

// Len returns the number of distinct facts.
func (s *FactSet) Len() int {
	return len(s.facts)
}

// Connections returns only the city-to-city connection facts.
func (s *FactSet) Connections() []GraphFact {
	var out []GraphFact
	for _, f := range s.facts {
		if f.IsConnection() {
			out = append(out, f)
		}
	}
	return out
}

// Relationships returns the non-connection facts.
func (s *FactSet) Relationships() []GraphFact {
	var out []GraphFact
	for _, f := range s.facts {
		if !f.IsConnection() {
			out = append(out, f)
		}
	}
	return out
}
