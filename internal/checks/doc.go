// Package checks defines the diagnostics run by `mgit doctor`.
//
// Each exported function returns a [doctor.Category]. Tool checks probe
// through a [probe.Prober] so they can be tested without the real tools;
// workspace checks read the config, the workspace root and the registry.
package checks
