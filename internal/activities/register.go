package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.ParseNCBIGeneActivity)
	w.RegisterActivity(a.ParseEnsemblActivity)
	w.RegisterActivity(a.ResolveOrthologsActivity)
	w.RegisterActivity(a.MarkRunActivity)
	w.RegisterActivity(a.WriteRunManifestActivity)
}
