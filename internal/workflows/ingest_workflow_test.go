package workflows

import (
	"context"
	"errors"
	"testing"

	"genegraph/internal/activities"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func newIngestEnv(t *testing.T) *testsuite.TestWorkflowEnvironment {
	t.Helper()
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(IngestWorkflow)
	registerActivityName(env, "ParseNCBIGeneActivity", func(context.Context, activities.ParseNCBIGeneInput) (activities.ParseNCBIGeneOutput, error) {
		return activities.ParseNCBIGeneOutput{}, nil
	})
	registerActivityName(env, "ParseEnsemblActivity", func(context.Context, activities.ParseEnsemblInput) (activities.ParseEnsemblOutput, error) {
		return activities.ParseEnsemblOutput{}, nil
	})
	registerActivityName(env, "ResolveOrthologsActivity", func(context.Context, activities.ResolveOrthologsInput) (activities.ResolveOrthologsOutput, error) {
		return activities.ResolveOrthologsOutput{}, nil
	})
	registerActivityName(env, "MarkRunActivity", func(context.Context, activities.MarkRunInput) error { return nil })
	registerActivityName(env, "WriteRunManifestActivity", func(context.Context, activities.WriteRunManifestInput) (activities.WriteRunManifestOutput, error) {
		return activities.WriteRunManifestOutput{}, nil
	})
	return env
}

func TestIngestWorkflowSuccess(t *testing.T) {
	env := newIngestEnv(t)

	env.OnActivity("ParseNCBIGeneActivity", mock.Anything, mock.Anything).
		Return(activities.ParseNCBIGeneOutput{NodeCount: 10, EdgeCount: 20, SeedGeneIDs: []string{"NCBIGene:438"}}, nil)
	env.OnActivity("ParseEnsemblActivity", mock.Anything, mock.Anything).
		Return(activities.ParseEnsemblOutput{NodeCount: 5, EdgeCount: 8}, nil)
	env.OnActivity("ResolveOrthologsActivity", mock.Anything, activities.ResolveOrthologsInput{
		RunID:       "run1",
		InputDir:    "/data/in",
		SeedGeneIDs: []string{"NCBIGene:438"},
	}).Return(activities.ResolveOrthologsOutput{Associations: 3, NodeCount: 2, EdgeCount: 12}, nil)
	env.OnActivity("MarkRunActivity", mock.Anything, activities.MarkRunInput{
		RunID:     "run1",
		Status:    "completed",
		NodeCount: 17,
		EdgeCount: 40,
		Orthologs: 3,
	}).Return(nil)
	env.OnActivity("WriteRunManifestActivity", mock.Anything, mock.Anything).
		Return(activities.WriteRunManifestOutput{Path: "/data/out/runs/run1/manifest.json"}, nil)

	env.ExecuteWorkflow(IngestWorkflow, IngestInput{RunID: "run1", InputDir: "/data/in", TaxonIDs: []string{"9606"}})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)

	v, err := env.QueryWorkflow(QueryGetIngestProgress)
	require.NoError(t, err)
	var progress IngestProgress
	require.NoError(t, v.Get(&progress))
	require.Equal(t, "done", progress.Steps["orthologs"])
	require.Equal(t, 3, progress.Orthologs)
}

func TestIngestWorkflowMalformedRecordNotRetried(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(IngestWorkflow)

	attempts := 0
	registerActivityName(env, "ParseNCBIGeneActivity", func(context.Context, activities.ParseNCBIGeneInput) (activities.ParseNCBIGeneOutput, error) {
		attempts++
		return activities.ParseNCBIGeneOutput{}, temporal.NewApplicationError("parse gene_info: malformed record: expected 15 fields, got 3", activities.ErrTypeMalformedRecord)
	})
	registerActivityName(env, "MarkRunActivity", func(context.Context, activities.MarkRunInput) error { return nil })

	env.ExecuteWorkflow(IngestWorkflow, IngestInput{RunID: "run1", InputDir: "/data/in", TaxonIDs: []string{"9606"}})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	// Wrong column counts are terminal: exactly one attempt, no retries.
	require.Equal(t, 1, attempts)

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)
}

func TestIngestWorkflowParseFailureMarksRunFailed(t *testing.T) {
	env := newIngestEnv(t)

	env.OnActivity("ParseNCBIGeneActivity", mock.Anything, mock.Anything).
		Return(activities.ParseNCBIGeneOutput{}, errors.New("parse gene_info: malformed record"))
	env.OnActivity("MarkRunActivity", mock.Anything, mock.MatchedBy(func(in activities.MarkRunInput) bool {
		return in.Status == "failed" && in.RunID == "run1"
	})).Return(nil)

	env.ExecuteWorkflow(IngestWorkflow, IngestInput{RunID: "run1", InputDir: "/data/in", TaxonIDs: []string{"9606"}})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "failed", out)

	v, err := env.QueryWorkflow(QueryGetIngestProgress)
	require.NoError(t, err)
	var progress IngestProgress
	require.NoError(t, v.Get(&progress))
	require.Equal(t, "failed", progress.Steps["ncbigene"])
	require.NotEmpty(t, progress.FailReason)
}
