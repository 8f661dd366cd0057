package schema

import "sort"

// Report is the outcome of comparing the endpoint path sets of two
// schema documents. Path lists are sorted so output and tests are
// deterministic.
type Report struct {
	// LocalOnly holds paths present locally but not remotely.
	LocalOnly []string
	// RemoteOnly holds paths present remotely but not locally.
	RemoteOnly []string
	// Common counts paths present on both sides.
	Common int
}

// InSync reports whether both sides expose the same path set.
func (r Report) InSync() bool {
	return len(r.LocalOnly) == 0 && len(r.RemoteOnly) == 0
}

// LocalTotal returns the number of paths in the local document.
func (r Report) LocalTotal() int {
	return r.Common + len(r.LocalOnly)
}

// RemoteTotal returns the number of paths in the remote document.
func (r Report) RemoteTotal() int {
	return r.Common + len(r.RemoteOnly)
}

// Diff compares the "paths" key sets of two documents. Only path
// presence is compared; operations and schemas under each path are
// ignored. A document without a paths object contributes the empty
// set. Diff never fails and does not modify its inputs.
func Diff(local, remote Document) Report {
	localPaths := local.Paths()
	remotePaths := remote.Paths()

	var report Report
	for name := range localPaths {
		if _, ok := remotePaths[name]; ok {
			report.Common++
		} else {
			report.LocalOnly = append(report.LocalOnly, name)
		}
	}
	for name := range remotePaths {
		if _, ok := localPaths[name]; !ok {
			report.RemoteOnly = append(report.RemoteOnly, name)
		}
	}

	sort.Strings(report.LocalOnly)
	sort.Strings(report.RemoteOnly)
	return report
}
