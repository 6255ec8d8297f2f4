package graph

// Kind says whether an entity is modeled as an ontology class or as a named
// individual. Most genes are classes; entries typed "unknown significance"
// (SO:0000110) are individuals, since they are not really genes.
type Kind int

const (
	KindUnknown Kind = iota
	KindClass
	KindIndividual
)

func (k Kind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindIndividual:
		return "individual"
	default:
		return "unknown"
	}
}

// Registry records, per canonical id, whether the entity was emitted as a
// class or an individual. The decision is made once per id and every later
// emission site (equivalence, deprecation, publication links) must look it
// up before choosing a class-level or individual-level operation. One
// Registry belongs to one parse session; it is never shared across runs.
type Registry struct {
	kinds map[string]Kind
}

func NewRegistry() *Registry {
	return &Registry{kinds: map[string]Kind{}}
}

// Decide returns the kind for id, recording it on first sight. A typeCode of
// TypeSequenceFeature marks unknown significance and yields an individual;
// everything else is a class. Once recorded, the first answer sticks for the
// rest of the session regardless of later type codes.
func (r *Registry) Decide(id, typeCode string) Kind {
	if k, ok := r.kinds[id]; ok {
		return k
	}
	k := KindClass
	if typeCode == TypeSequenceFeature {
		k = KindIndividual
	}
	r.kinds[id] = k
	return k
}

// Record pins a kind for an id without going through the type-code rule.
// Recording a different kind for an already-registered id is ignored; the
// first registration wins.
func (r *Registry) Record(id string, k Kind) {
	if _, ok := r.kinds[id]; ok {
		return
	}
	r.kinds[id] = k
}

// Lookup returns the recorded kind, or KindUnknown if the id has not been
// classified in this session.
func (r *Registry) Lookup(id string) Kind {
	return r.kinds[id]
}
