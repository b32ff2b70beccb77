package ui

import "fmt"

// ProgressReporter prints one line per attribute. The propagation notice
// is only shown when verbose.
type ProgressReporter struct {
	ui      *UI
	verbose bool
}

func NewProgressReporter(u *UI, verbose bool) *ProgressReporter {
	return &ProgressReporter{ui: u, verbose: verbose}
}

func (r *ProgressReporter) Removing(name string, path string) {
	fmt.Fprintf(r.ui.Out, "%s %s from %s\n",
		r.ui.Styles.Warning.Render(IconRemove+" removing"),
		r.ui.Styles.Bold.Render(name),
		r.ui.Styles.Accent.Render(fmt.Sprintf("%q", path)))
}

func (r *ProgressReporter) Propagating(path string) {
	if !r.verbose {
		return
	}
	fmt.Fprintln(r.ui.Out, r.ui.FormatMuted("propagating to children of "+path))
}

func (r *ProgressReporter) PropagationFailed(path string, err error) {
	fmt.Fprintln(r.ui.Err, r.ui.FormatWarning(fmt.Sprintf("could not propagate to children of %s: %v", path, err)))
}
