package workflows

import (
	"time"

	"genegraph/internal/activities"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const QueryGetIngestProgress = "GetIngestProgress"

// IngestWorkflow runs one full graph build: the NCBI passes, the Ensembl
// pass, and ortholog resolution, then marks the run and writes its
// manifest. Pass failures mark the run failed and complete the workflow
// with a "failed" result instead of erroring, so the failure reason is
// queryable.
func IngestWorkflow(ctx workflow.Context, input IngestInput) (string, error) {
	progress := IngestProgress{
		RunID: input.RunID,
		Steps: map[string]string{},
	}
	if err := workflow.SetQueryHandler(ctx, QueryGetIngestProgress, func() (IngestProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
			// Wrong column counts will not fix themselves on retry.
			NonRetryableErrorTypes: []string{activities.ErrTypeMalformedRecord},
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	fail := func(step string, err error) (string, error) {
		progress.Steps[step] = "failed"
		progress.FailReason = err.Error()
		_ = workflow.ExecuteActivity(ctx, "MarkRunActivity", activities.MarkRunInput{
			RunID:      input.RunID,
			Status:     "failed",
			NodeCount:  progress.NodeCount,
			EdgeCount:  progress.EdgeCount,
			Orthologs:  progress.Orthologs,
			FailReason: err.Error(),
		}).Get(ctx, nil)
		return "failed", nil
	}

	progress.CurrentStep = "ncbigene"
	progress.Steps[progress.CurrentStep] = "processing"
	var ncbiOut activities.ParseNCBIGeneOutput
	if err := workflow.ExecuteActivity(ctx, "ParseNCBIGeneActivity", activities.ParseNCBIGeneInput{
		RunID:    input.RunID,
		InputDir: input.InputDir,
		TaxonIDs: input.TaxonIDs,
		GeneIDs:  input.GeneIDs,
		TestMode: input.TestMode,
	}).Get(ctx, &ncbiOut); err != nil {
		return fail("ncbigene", err)
	}
	progress.NodeCount += ncbiOut.NodeCount
	progress.EdgeCount += ncbiOut.EdgeCount
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "ensembl"
	progress.Steps[progress.CurrentStep] = "processing"
	var ensOut activities.ParseEnsemblOutput
	if err := workflow.ExecuteActivity(ctx, "ParseEnsemblActivity", activities.ParseEnsemblInput{
		RunID:    input.RunID,
		InputDir: input.InputDir,
		TaxonIDs: input.TaxonIDs,
		GeneIDs:  input.GeneIDs,
		TestMode: input.TestMode,
	}).Get(ctx, &ensOut); err != nil {
		return fail("ensembl", err)
	}
	progress.NodeCount += ensOut.NodeCount
	progress.EdgeCount += ensOut.EdgeCount
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "orthologs"
	progress.Steps[progress.CurrentStep] = "processing"
	var orthOut activities.ResolveOrthologsOutput
	if err := workflow.ExecuteActivity(ctx, "ResolveOrthologsActivity", activities.ResolveOrthologsInput{
		RunID:       input.RunID,
		InputDir:    input.InputDir,
		SeedGeneIDs: ncbiOut.SeedGeneIDs,
	}).Get(ctx, &orthOut); err != nil {
		return fail("orthologs", err)
	}
	progress.NodeCount += orthOut.NodeCount
	progress.EdgeCount += orthOut.EdgeCount
	progress.Orthologs = orthOut.Associations
	progress.Steps[progress.CurrentStep] = "done"

	progress.CurrentStep = "finalize"
	if err := workflow.ExecuteActivity(ctx, "MarkRunActivity", activities.MarkRunInput{
		RunID:     input.RunID,
		Status:    "completed",
		NodeCount: progress.NodeCount,
		EdgeCount: progress.EdgeCount,
		Orthologs: progress.Orthologs,
	}).Get(ctx, nil); err != nil {
		return fail("finalize", err)
	}

	_ = workflow.ExecuteActivity(ctx, "WriteRunManifestActivity", activities.WriteRunManifestInput{
		RunID: input.RunID,
		Manifest: map[string]any{
			"run_id":       input.RunID,
			"taxon_ids":    input.TaxonIDs,
			"test_mode":    input.TestMode,
			"node_count":   progress.NodeCount,
			"edge_count":   progress.EdgeCount,
			"orthologs":    progress.Orthologs,
			"generated_at": workflow.Now(ctx),
		},
	}).Get(ctx, nil)

	progress.Steps["finalize"] = "done"
	return "completed", nil
}
