package models

import "time"

type Run struct {
	RunID      string    `json:"run_id"`
	Status     string    `json:"status"`
	TaxonIDs   []string  `json:"taxon_ids"`
	TestMode   bool      `json:"test_mode"`
	NodeCount  int       `json:"node_count"`
	EdgeCount  int       `json:"edge_count"`
	Orthologs  int       `json:"ortholog_count"`
	FailReason string    `json:"fail_reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type GraphNode struct {
	ID          string `json:"id"`
	Label       string `json:"label,omitempty"`
	Kind        string `json:"kind"`
	TypeCode    string `json:"type_code,omitempty"`
	Description string `json:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty"`
}

type GraphEdge struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

type GraphSynonym struct {
	NodeID   string `json:"node_id"`
	Text     string `json:"text"`
	Relation string `json:"relation"`
}
