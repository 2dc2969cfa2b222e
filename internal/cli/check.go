package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/scene"
)

// checkCommand creates the scene check command.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		watch  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "check <scene.toml>",
		Short: "Build a scene and report every statement's outcome",
		Long: `Build a scene file against the in-memory host and report, for every
dock, align, grid and constraint statement, the constraints it created or
the rule it broke. Views whose layout is ambiguous are listed at the end.

With --watch the scene is checked again every time the file changes.`,
		Example: `  anchor check login.toml
  anchor check login.toml --watch`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return c.watchCheck(cmd, args[0], asJSON)
			}
			report, err := c.runCheck(args[0], asJSON)
			if err != nil {
				return err
			}
			if n := report.Failed(); n > 0 {
				return fmt.Errorf("%d of %d statements failed", n, len(report.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "check again whenever the file changes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

func (c *CLI) runCheck(path string, asJSON bool) (scene.Report, error) {
	prog := newProgress(c.Logger)
	res, err := c.buildScene(path)
	if err != nil {
		return scene.Report{}, err
	}
	defer res.Close()

	report := res.Report
	if asJSON {
		return report, printJSON(report)
	}
	if err := report.Render(os.Stdout); err != nil {
		return report, err
	}
	prog.done(fmt.Sprintf("Checked %s", filepath.Base(path)))
	return report, nil
}

func (c *CLI) watchCheck(cmd *cobra.Command, path string, asJSON bool) error {
	w, err := newFileWatcher(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	if err := w.Start(); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}
	defer w.Stop()

	check := func() {
		if _, err := c.runCheck(path, asJSON); err != nil {
			printError("%v", err)
		}
		printInfo("Watching %s (ctrl+c to stop)", path)
	}

	check()
	ctx := cmd.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changes:
			c.Logger.Debug("scene changed", "path", w.Path)
			check()
		}
	}
}
