// Package linter installs and runs the external Fortran linter.
package linter

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
)

// Runner executes an external command and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Settings names the interpreter, the pip package, the importable module and
// the linter executable.
type Settings struct {
	Python  string
	Package string
	Module  string
	Binary  string
}

// Installer drives pip and the linter executable through a Runner.
type Installer struct {
	settings Settings
	runner   Runner
	out      io.Writer
	log      commonlog.Logger
}

// NewInstaller creates an installer that prints status lines to out.
func NewInstaller(settings Settings, runner Runner, out io.Writer) *Installer {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Installer{
		settings: settings,
		runner:   runner,
		out:      out,
		log:      commonlog.GetLogger("fortgrammar.linter"),
	}
}

// Install runs "<python> -m pip install <package>".
func (i *Installer) Install(ctx context.Context) error {
	i.log.Infof("installing %s with %s", i.settings.Package, i.settings.Python)

	output, err := i.runner.Run(ctx, i.settings.Python, "-m", "pip", "install", i.settings.Package)
	if err != nil {
		i.log.Debugf("pip output: %s", output)
		return fmt.Errorf("failed to install %s: %w", i.settings.Package, err)
	}
	return nil
}

// Verify imports the linter module and prints whether that worked.
func (i *Installer) Verify(ctx context.Context) bool {
	_, err := i.runner.Run(ctx, i.settings.Python, "-c", "import "+i.settings.Module)
	if err != nil {
		i.log.Warningf("import %s failed: %s", i.settings.Module, err)
		fmt.Fprintf(i.out, "%s %s installation failed\n", color.RedString("✗"), i.settings.Package)
		return false
	}

	fmt.Fprintf(i.out, "%s %s installed successfully\n", color.GreenString("✓"), i.settings.Package)
	return true
}

// Lint runs "<binary> <path> --stdout" and returns what the linter printed.
// The linter exits non-zero when it reports findings, so the output is
// returned together with the error.
func (i *Installer) Lint(ctx context.Context, path string) (string, error) {
	output, err := i.runner.Run(ctx, i.settings.Binary, path, "--stdout")
	text := strings.TrimRight(string(output), "\n")
	if err != nil {
		return text, fmt.Errorf("%s %s: %w", i.settings.Binary, path, err)
	}
	return text, nil
}
