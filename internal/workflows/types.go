package workflows

type IngestInput struct {
	RunID    string   `json:"run_id"`
	InputDir string   `json:"input_dir"`
	TaxonIDs []string `json:"taxon_ids"`
	GeneIDs  []string `json:"gene_ids,omitempty"`
	TestMode bool     `json:"test_mode"`
}

type IngestProgress struct {
	RunID       string            `json:"run_id"`
	CurrentStep string            `json:"current_step"`
	Steps       map[string]string `json:"steps"`
	NodeCount   int               `json:"node_count"`
	EdgeCount   int               `json:"edge_count"`
	Orthologs   int               `json:"orthologs"`
	FailReason  string            `json:"fail_reason,omitempty"`
}
