package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vireon/internal/config"
	"vireon/internal/vcs"
)

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// discoverGitRoot returns the git root or empty when not found.
var discoverGitRoot = func(startDir string) string {
	root, err := vcs.DiscoverRepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}

// initTarget is where init writes and the repository it belongs to, if any.
type initTarget struct {
	configPath string
	gitRoot    string
}

// runInit implements the init command.
func runInit(cmd *Command, args []string, stdout, stderr io.Writer) int {
	if wantsHelp(args) {
		printCommandUsage(cmd, stdout)
		return ExitOK
	}
	fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	specPath := fs.String("spec", "", "Config file to create (default: .vireon/config.yml at the git root or working directory)")
	if err := fs.Parse(args); err != nil {
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		printCommandUsage(cmd, stderr)
		return ExitUsage
	}

	target, err := resolveInitTarget(*specPath)
	if err == nil {
		err = checkInitTarget(target.configPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Init failed: %v\n", err)
		return ExitError
	}

	in := initInput
	if in == nil {
		in = os.Stdin
	}
	ask := newPrompter(in, stdout)
	ok, err := ask.confirm(fmt.Sprintf("Initialize Vireon config in %s?", filepath.Dir(target.configPath)), true)
	if err != nil {
		fmt.Fprintf(stderr, "Init failed: %v\n", err)
		return ExitError
	}
	if !ok {
		fmt.Fprintln(stderr, "Init cancelled.")
		return ExitError
	}
	outputDir, err := ask.text("Results folder", config.DefaultOutputDir)
	if err != nil {
		fmt.Fprintf(stderr, "Init failed: %v\n", err)
		return ExitError
	}
	ignore := false
	if target.gitRoot != "" {
		if ignore, err = ask.confirm("Add results folder to .gitignore?", true); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
	}

	written, err := config.Scaffold(target.configPath, outputDir)
	if err != nil {
		fmt.Fprintf(stderr, "Init failed: %v\n", err)
		return ExitError
	}
	for _, path := range written {
		fmt.Fprintf(stdout, "Wrote %s\n", path)
	}
	if !ignore {
		return ExitOK
	}
	resultsDir := config.ResolveOutputDir(config.RootFromConfigPath(target.configPath), outputDir)
	changed, err := addGitignoreEntry(target.gitRoot, resultsDir)
	if err != nil {
		fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
		return ExitError
	}
	if changed {
		fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(target.gitRoot, ".gitignore"))
	}
	return ExitOK
}

// resolveInitTarget places the config at --spec, or under .vireon/ at the git
// root, falling back to the working directory.
func resolveInitTarget(specPath string) (initTarget, error) {
	if specPath = strings.TrimSpace(specPath); specPath != "" {
		abs, err := filepath.Abs(specPath)
		if err != nil {
			return initTarget{}, err
		}
		return initTarget{configPath: abs, gitRoot: discoverGitRoot(config.RootFromConfigPath(abs))}, nil
	}
	root := discoverGitRoot("")
	base := root
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return initTarget{}, err
		}
		base = wd
	}
	return initTarget{configPath: config.ConfigPath(base), gitRoot: root}, nil
}

// checkInitTarget refuses to overwrite an existing config.
func checkInitTarget(configPath string) error {
	if info, err := os.Stat(filepath.Dir(configPath)); err == nil && !info.IsDir() {
		return fmt.Errorf("config directory %q is not a directory", filepath.Dir(configPath))
	}
	info, err := os.Stat(configPath)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("config path %q is a directory", configPath)
	case err == nil:
		return fmt.Errorf("config file already exists at %q", configPath)
	case !os.IsNotExist(err):
		return fmt.Errorf("stat config file: %w", err)
	}
	return nil
}
