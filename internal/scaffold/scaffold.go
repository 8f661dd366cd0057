// Package scaffold materializes the on-disk layout used by the apidog
// workflow: helper templates next to the schema directory, plus the
// environment configuration, README and .gitignore rules for generated
// files.
package scaffold

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ennam/apidogctl/internal/ui"
)

//go:embed templates
var templates embed.FS

// gitignoreMarker identifies rules appended by a previous init run so
// they are not duplicated.
const gitignoreMarker = "# APIDOG generated files"

// Options control what Run creates and where.
type Options struct {
	// OutputDir is the schema directory, typically <project root>/apidog.
	// Root-level helpers land in its parent directory.
	OutputDir string

	// Force overwrites files that already exist.
	Force bool
}

// Run initializes the apidog layout: Makefile and compose helpers at the
// project root, environments.json and a README inside the output
// directory, and .gitignore rules for generated schema files.
func Run(opts Options, p *ui.Printer) error {
	p.Printf("Initializing APIDOG integration...")

	if _, err := os.Stat(opts.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		p.Printf("  Created: %s/", opts.OutputDir)
	}

	projectRoot := filepath.Dir(opts.OutputDir)

	for _, name := range []string{"Makefile.apidog", "docker-compose.apidog.yml"} {
		if err := copyTemplate(name, filepath.Join(projectRoot, name), name, opts.Force, p); err != nil {
			return err
		}
	}

	envDest := filepath.Join(opts.OutputDir, "environments.json")
	if err := copyTemplate("environments.json", envDest, "environments.json", opts.Force, p); err != nil {
		return err
	}

	if err := appendGitignore(filepath.Join(projectRoot, ".gitignore"), p); err != nil {
		return err
	}

	readmeDest := filepath.Join(opts.OutputDir, "README.md")
	readmeName := filepath.Join(filepath.Base(opts.OutputDir), "README.md")
	if err := copyTemplate("README.md", readmeDest, readmeName, opts.Force, p); err != nil {
		return err
	}

	p.Success("\nAPIDOG initialization complete!")
	p.Printf("\nNext steps:")
	p.Printf("  1. Configure credentials: apidogctl auth set")
	p.Printf("  2. Run: apidogctl export")
	p.Printf("  3. Run: apidogctl push")
	return nil
}

// copyTemplate writes an embedded template to dest, skipping existing
// files unless force is set. display is the name shown to the user.
func copyTemplate(name, dest, display string, force bool, p *ui.Printer) error {
	data, err := templates.ReadFile("templates/" + name)
	if err != nil {
		return fmt.Errorf("failed to read template %s: %w", name, err)
	}

	if _, err := os.Stat(dest); err == nil && !force {
		p.Printf("  Skipped (exists): %s", display)
		return nil
	}

	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", display, err)
	}
	p.Success("  Created: %s", display)
	return nil
}

// appendGitignore adds the generated-file rules to the project
// .gitignore, creating the file when absent. A .gitignore already
// carrying the marker is left untouched.
func appendGitignore(path string, p *ui.Printer) error {
	rules, err := templates.ReadFile("templates/gitignore.apidog")
	if err != nil {
		return fmt.Errorf("failed to read template gitignore.apidog: %w", err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if strings.Contains(string(existing), gitignoreMarker) {
			p.Printf("  Skipped (exists): .gitignore rules")
			return nil
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open .gitignore: %w", err)
		}
		defer f.Close()
		if _, err := fmt.Fprintf(f, "\n%s", rules); err != nil {
			return fmt.Errorf("failed to append to .gitignore: %w", err)
		}
	case os.IsNotExist(err):
		if err := os.WriteFile(path, rules, 0o644); err != nil {
			return fmt.Errorf("failed to write .gitignore: %w", err)
		}
	default:
		return fmt.Errorf("failed to read .gitignore: %w", err)
	}

	p.Success("  Updated: .gitignore")
	return nil
}
