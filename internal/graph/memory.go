package graph

import "sort"

// Node is one entity in the in-memory graph.
type Node struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"-"`
	KindLabel   string `json:"kind"`
	Label       string `json:"label,omitempty"`
	TypeCode    string `json:"type_code,omitempty"`
	Description string `json:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`

	Synonyms []Synonym `json:"synonyms,omitempty"`
}

type Synonym struct {
	Text     string          `json:"text"`
	Relation SynonymRelation `json:"relation"`
}

// Edge is one (subject, predicate, object) fact.
type Edge struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

type memNode struct {
	kind        Kind
	label       string
	typeCode    string
	description string
	deprecated  bool
	synonyms    map[Synonym]struct{}
}

// Memory is the in-process Sink. Facts are kept with set semantics, so
// repeated emissions collapse naturally. A Memory lives for one parse
// session and is snapshot into storage afterwards.
type Memory struct {
	nodes map[string]*memNode
	edges map[Edge]struct{}
}

var _ Sink = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		nodes: map[string]*memNode{},
		edges: map[Edge]struct{}{},
	}
}

func (m *Memory) ensure(id string, kind Kind) *memNode {
	n, ok := m.nodes[id]
	if !ok {
		n = &memNode{kind: kind, synonyms: map[Synonym]struct{}{}}
		m.nodes[id] = n
	}
	if n.kind == KindUnknown {
		n.kind = kind
	}
	return n
}

func (m *Memory) add(id string, kind Kind, label, typeCode, description string) {
	n := m.ensure(id, kind)
	if label != "" {
		n.label = label
	}
	if typeCode != "" {
		n.typeCode = typeCode
	}
	if description != "" {
		n.description = description
	}
}

func (m *Memory) AddClass(id, label, typeCode, description string) {
	m.add(id, KindClass, label, typeCode, description)
}

func (m *Memory) AddIndividual(id, label, typeCode, description string) {
	m.add(id, KindIndividual, label, typeCode, description)
}

func (m *Memory) AddEquivalence(a, b string) {
	// Undirected: store one canonical orientation so A~B and B~A collapse.
	if b < a {
		a, b = b, a
	}
	m.ensure(a, KindClass)
	m.ensure(b, KindClass)
	m.edges[Edge{a, PredEquivalentClass, b}] = struct{}{}
}

func (m *Memory) AddSameIndividual(a, b string) {
	if b < a {
		a, b = b, a
	}
	m.ensure(a, KindIndividual)
	m.ensure(b, KindIndividual)
	m.edges[Edge{a, PredSameAs, b}] = struct{}{}
}

func (m *Memory) AddSynonym(id, text string, rel SynonymRelation) {
	if text == "" {
		return
	}
	n := m.ensure(id, KindUnknown)
	n.synonyms[Synonym{Text: text, Relation: rel}] = struct{}{}
}

func (m *Memory) AddTriple(subject, predicate, object string) {
	m.edges[Edge{subject, predicate, object}] = struct{}{}
}

func (m *Memory) AddDeprecated(id string, replacements []string) {
	n := m.ensure(id, KindUnknown)
	n.deprecated = true
	for _, r := range replacements {
		m.edges[Edge{id, PredReplacedBy, r}] = struct{}{}
	}
}

func (m *Memory) AddTaxon(taxonID, id string) {
	m.edges[Edge{id, PredInTaxon, taxonID}] = struct{}{}
}

// Node returns a snapshot of one entity, or false if absent.
func (m *Memory) Node(id string) (Node, bool) {
	n, ok := m.nodes[id]
	if !ok {
		return Node{}, false
	}
	return m.snapshotNode(id, n), true
}

// Nodes returns all entities sorted by id.
func (m *Memory) Nodes() []Node {
	ids := make([]string, 0, len(m.nodes))
	for id := range m.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.snapshotNode(id, m.nodes[id]))
	}
	return out
}

// Edges returns all facts sorted by subject, predicate, object.
func (m *Memory) Edges() []Edge {
	out := make([]Edge, 0, len(m.edges))
	for e := range m.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		if out[i].Predicate != out[j].Predicate {
			return out[i].Predicate < out[j].Predicate
		}
		return out[i].Object < out[j].Object
	})
	return out
}

// HasEdge reports whether the exact fact was emitted.
func (m *Memory) HasEdge(subject, predicate, object string) bool {
	_, ok := m.edges[Edge{subject, predicate, object}]
	return ok
}

func (m *Memory) snapshotNode(id string, n *memNode) Node {
	syns := make([]Synonym, 0, len(n.synonyms))
	for s := range n.synonyms {
		syns = append(syns, s)
	}
	sort.Slice(syns, func(i, j int) bool {
		if syns[i].Text != syns[j].Text {
			return syns[i].Text < syns[j].Text
		}
		return syns[i].Relation < syns[j].Relation
	})
	return Node{
		ID:          id,
		Kind:        n.kind,
		KindLabel:   n.kind.String(),
		Label:       n.label,
		TypeCode:    n.typeCode,
		Description: n.description,
		Deprecated:  n.deprecated,
		Synonyms:    syns,
	}
}
