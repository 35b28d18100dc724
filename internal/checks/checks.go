package checks

import (
	"iter"

	"github.com/raphi011/mgit/internal/doctor"
	"github.com/raphi011/mgit/internal/probe"
)

// All returns the full checkup in display order.
func All(p probe.Prober, env WorkspaceEnv) iter.Seq[doctor.Category] {
	return doctor.Categories(
		BuildDependencies(p),
		Forges(p),
		Workspace(env, p),
	)
}
