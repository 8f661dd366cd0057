// Package ui renders command output: status lines, schema statistics
// and the local-versus-cloud comparison report.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ennam/apidogctl/pkg/schema"
)

// maxListedPaths bounds each section of the comparison report; the
// remainder is summarized as a count.
const maxListedPaths = 20

// Printer writes human-facing command output. With color enabled it
// styles status lines through pterm; otherwise it emits the same text
// unstyled, which keeps output stable for tests and pipes.
type Printer struct {
	out     io.Writer
	color   bool
	verbose bool
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer, color, verbose bool) *Printer {
	return &Printer{out: out, color: color, verbose: verbose}
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Success writes a success line.
func (p *Printer) Success(format string, args ...any) {
	if p.color {
		pterm.Success.WithWriter(p.out).Printfln(format, args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Warning writes a warning line.
func (p *Printer) Warning(format string, args ...any) {
	if p.color {
		pterm.Warning.WithWriter(p.out).Printfln(format, args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Error writes an error line.
func (p *Printer) Error(format string, args ...any) {
	if p.color {
		pterm.Error.WithWriter(p.out).Printfln(format, args...)
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Verbose writes a line only when verbose output is on.
func (p *Printer) Verbose(format string, args ...any) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Stats prints the post-export schema summary.
func (p *Printer) Stats(stats schema.Stats) {
	version := stats.Version
	if version == "" {
		version = "N/A"
	}

	p.Printf("")
	p.Printf("Schema Statistics:")
	p.Printf("  API Version: %s", version)
	p.Printf("  Endpoints: %d", stats.PathCount)
	p.Printf("  Components: %d", stats.SchemaCount)
}

// DiffReport prints the comparison between the local schema and the
// one in Apidog Cloud. Each side lists at most maxListedPaths paths.
func (p *Printer) DiffReport(report schema.Report) {
	rule := strings.Repeat("=", 60)

	p.Printf("")
	p.Printf("%s", rule)
	p.Printf("SCHEMA COMPARISON REPORT")
	p.Printf("%s", rule)
	p.Printf("Local endpoints:  %d", report.LocalTotal())
	p.Printf("Cloud endpoints:  %d", report.RemoteTotal())
	p.Printf("Common endpoints: %d", report.Common)
	p.Printf("%s", rule)

	if len(report.LocalOnly) > 0 {
		p.Printf("")
		p.Success("[+] Only in LOCAL (%d):", len(report.LocalOnly))
		p.listPaths(report.LocalOnly)
	}

	if len(report.RemoteOnly) > 0 {
		p.Printf("")
		p.Warning("[-] Only in CLOUD (%d):", len(report.RemoteOnly))
		p.listPaths(report.RemoteOnly)
	}

	if report.InSync() {
		p.Printf("")
		p.Success("Schemas are in sync!")
	}

	p.Printf("")
	p.Printf("%s", rule)
}

// listPaths prints a bounded, indented path list.
func (p *Printer) listPaths(paths []string) {
	for i, path := range paths {
		if i == maxListedPaths {
			p.Printf("    ... and %d more", len(paths)-maxListedPaths)
			return
		}
		p.Printf("    %s", path)
	}
}
