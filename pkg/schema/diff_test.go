package schema

import (
	"reflect"
	"testing"
)

func docWithPaths(paths ...string) Document {
	p := map[string]any{}
	for _, path := range paths {
		p[path] = map[string]any{"get": map[string]any{}}
	}
	return Document{"paths": p}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name           string
		local          Document
		remote         Document
		wantLocalOnly  []string
		wantRemoteOnly []string
		wantCommon     int
		wantInSync     bool
	}{
		{
			name:       "identical path sets",
			local:      docWithPaths("/users/", "/orders/"),
			remote:     docWithPaths("/orders/", "/users/"),
			wantCommon: 2,
			wantInSync: true,
		},
		{
			name:           "disjoint path sets",
			local:          docWithPaths("/users/"),
			remote:         docWithPaths("/orders/"),
			wantLocalOnly:  []string{"/users/"},
			wantRemoteOnly: []string{"/orders/"},
		},
		{
			name:           "partial overlap",
			local:          docWithPaths("/users/", "/orders/", "/items/"),
			remote:         docWithPaths("/users/", "/payments/"),
			wantLocalOnly:  []string{"/items/", "/orders/"},
			wantRemoteOnly: []string{"/payments/"},
			wantCommon:     1,
		},
		{
			name:       "both empty",
			local:      Document{},
			remote:     Document{},
			wantInSync: true,
		},
		{
			name:           "missing paths key treated as empty",
			local:          Document{"openapi": "3.0.0"},
			remote:         docWithPaths("/users/"),
			wantRemoteOnly: []string{"/users/"},
		},
		{
			name:          "malformed paths value treated as empty",
			local:         docWithPaths("/users/"),
			remote:        Document{"paths": "not a map"},
			wantLocalOnly: []string{"/users/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Diff(tt.local, tt.remote)

			if !reflect.DeepEqual(report.LocalOnly, tt.wantLocalOnly) {
				t.Errorf("expected local-only %v, got %v", tt.wantLocalOnly, report.LocalOnly)
			}
			if !reflect.DeepEqual(report.RemoteOnly, tt.wantRemoteOnly) {
				t.Errorf("expected remote-only %v, got %v", tt.wantRemoteOnly, report.RemoteOnly)
			}
			if report.Common != tt.wantCommon {
				t.Errorf("expected common %d, got %d", tt.wantCommon, report.Common)
			}
			if report.InSync() != tt.wantInSync {
				t.Errorf("expected InSync %v, got %v", tt.wantInSync, report.InSync())
			}
		})
	}
}

func TestDiffResultsAreSorted(t *testing.T) {
	local := docWithPaths("/zebras/", "/apples/", "/mangos/")
	remote := docWithPaths("/yaks/", "/bears/")

	report := Diff(local, remote)

	wantLocal := []string{"/apples/", "/mangos/", "/zebras/"}
	if !reflect.DeepEqual(report.LocalOnly, wantLocal) {
		t.Errorf("expected sorted local-only %v, got %v", wantLocal, report.LocalOnly)
	}

	wantRemote := []string{"/bears/", "/yaks/"}
	if !reflect.DeepEqual(report.RemoteOnly, wantRemote) {
		t.Errorf("expected sorted remote-only %v, got %v", wantRemote, report.RemoteOnly)
	}
}

func TestDiffTotals(t *testing.T) {
	local := docWithPaths("/a/", "/b/", "/c/")
	remote := docWithPaths("/b/", "/c/", "/d/", "/e/")

	report := Diff(local, remote)

	if got := report.LocalTotal(); got != 3 {
		t.Errorf("expected local total 3, got %d", got)
	}
	if got := report.RemoteTotal(); got != 4 {
		t.Errorf("expected remote total 4, got %d", got)
	}
	if report.Common != 2 {
		t.Errorf("expected common 2, got %d", report.Common)
	}
}

func TestDiffDoesNotModifyInputs(t *testing.T) {
	local := docWithPaths("/users/")
	remote := Document{}

	_ = Diff(local, remote)

	if len(local.Paths()) != 1 {
		t.Error("local document was modified")
	}
	if _, ok := remote["paths"]; ok {
		t.Error("remote document gained a paths key")
	}
}
