package activities

type ParseNCBIGeneInput struct {
	RunID    string   `json:"run_id"`
	InputDir string   `json:"input_dir"`
	TaxonIDs []string `json:"taxon_ids"`
	GeneIDs  []string `json:"gene_ids,omitempty"`
	TestMode bool     `json:"test_mode"`
}

type ParseNCBIGeneOutput struct {
	NodeCount   int      `json:"node_count"`
	EdgeCount   int      `json:"edge_count"`
	SeedGeneIDs []string `json:"seed_gene_ids"`
}

type ParseEnsemblInput struct {
	RunID    string   `json:"run_id"`
	InputDir string   `json:"input_dir"`
	TaxonIDs []string `json:"taxon_ids"`
	GeneIDs  []string `json:"gene_ids,omitempty"`
	TestMode bool     `json:"test_mode"`
}

type ParseEnsemblOutput struct {
	NodeCount int `json:"node_count"`
	EdgeCount int `json:"edge_count"`
}

type ResolveOrthologsInput struct {
	RunID       string   `json:"run_id"`
	InputDir    string   `json:"input_dir"`
	SeedGeneIDs []string `json:"seed_gene_ids"`
}

type ResolveOrthologsOutput struct {
	Associations int `json:"associations"`
	NodeCount    int `json:"node_count"`
	EdgeCount    int `json:"edge_count"`
}

type MarkRunInput struct {
	RunID      string `json:"run_id"`
	Status     string `json:"status"`
	NodeCount  int    `json:"node_count"`
	EdgeCount  int    `json:"edge_count"`
	Orthologs  int    `json:"orthologs"`
	FailReason string `json:"fail_reason,omitempty"`
}

type WriteRunManifestInput struct {
	RunID    string         `json:"run_id"`
	Manifest map[string]any `json:"manifest"`
}

type WriteRunManifestOutput struct {
	Path string `json:"path"`
}
