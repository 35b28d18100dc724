// Package doctor runs environment diagnostics and prints one line per outcome.
//
// A checkup is a sequence of [Category] values, each a label plus a lazy
// sequence of [Diagnostic] values. The [Doctor] walks them strictly in
// order: it prints the category label, then runs each diagnostic to
// completion before pulling the next one.
//
// # Reporting
//
// A diagnostic talks to the engine through a [Reporter]:
//
//	r.Report(doctor.OK("Git 2.44.0"))           // literal result
//	r.Test(func(ctx context.Context) (doctor.Result, error) {
//		v, err := p.Version(ctx, "go", "version")
//		if err != nil {
//			return doctor.Result{}, err         // becomes a warn line
//		}
//		return doctor.OK(v), nil
//	})
//
// Errors and panics raised while evaluating a [TestFunc] are contained:
// they are printed as a warn line (see [ErrorText]) and the walk continues.
// An error returned by Diagnose itself is structural and aborts the run.
//
// # Output
//
// Each category prints its label on a line of its own, followed by one
// line per report:
//
//	Build dependencies
//	  ✓ Git 2.44.0
//	  → Go not found in PATH, install it
//
// Warn lines go to the warn writer (stderr by default) so that stdout
// stays clean when piped.
package doctor
