package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/snapshot"
)

// snapshotCommand creates the snapshot command and its subcommands.
func (c *CLI) snapshotCommand() *cobra.Command {
	var (
		output string
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "snapshot <scene.toml>",
		Short: "Capture a laid-out scene",
		Long: `Build a scene and capture every view's frame, constraints and grid plan,
together with the check report.

The snapshot is written to --output, saved to the configured store with
--save, or printed as JSON when neither is given.`,
		Example: `  anchor snapshot login.toml -o login.snapshot.json
  anchor snapshot login.toml --save
  anchor snapshot list --scene login
  anchor snapshot show login.snapshot.json`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.buildScene(args[0])
			if err != nil {
				return err
			}
			defer res.Close()
			snap := snapshot.Capture(res)

			if output == "" && !save {
				return printJSON(snap)
			}
			if output != "" {
				if err := snap.WriteFile(output); err != nil {
					return err
				}
				printSuccess("Captured %s (%d views)", snap.Scene, len(snap.Views))
				printFile(output)
			}
			if save {
				if err := c.saveSnapshot(cmd, snap); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the snapshot to this JSON file")
	cmd.Flags().BoolVar(&save, "save", false, "save the snapshot to the configured store")

	cmd.AddCommand(c.snapshotListCommand())
	cmd.AddCommand(c.snapshotShowCommand())

	return cmd
}

func (c *CLI) saveSnapshot(cmd *cobra.Command, snap *snapshot.Snapshot) error {
	ctx := cmd.Context()
	if c.Config.Store.Backend == "memory" {
		printWarning("store.backend is memory; the snapshot lives only as long as this process")
	}
	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close(ctx)

	if err := store.Save(ctx, snap); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	printSuccess("Saved snapshot %s", snap.ID)
	printNextStep("Inspect it with", "anchor snapshot show "+snap.ID)
	return nil
}

func (c *CLI) snapshotListCommand() *cobra.Command {
	var (
		sceneName string
		limit     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close(ctx)

			list, err := store.List(ctx, sceneName, limit)
			if err != nil {
				return fmt.Errorf("list snapshots: %w", err)
			}
			if len(list) == 0 {
				printInfo("No snapshots")
				return nil
			}
			for _, s := range list {
				status := styleIconSuccess.Render(iconSuccess)
				if s.Failed > 0 {
					status = styleIconError.Render(iconError)
				}
				fmt.Printf("%s %s  %s  %s\n", status, StyleValue.Render(s.ID),
					StyleNumber.Render(s.Scene), StyleDim.Render(s.CreatedAt.Local().Format(time.DateTime)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sceneName, "scene", "", "only list snapshots of this scene")
	cmd.Flags().IntVar(&limit, "limit", snapshot.DefaultListLimit, "maximum number of snapshots")

	return cmd
}

func (c *CLI) snapshotShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id|file.json>",
		Short: "Show a snapshot from a file or the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.loadSnapshot(cmd, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(snap)
			}
			printSnapshot(snap)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the snapshot as JSON")

	return cmd
}

// loadSnapshot reads ref as a file when it exists, otherwise as a store id.
func (c *CLI) loadSnapshot(cmd *cobra.Command, ref string) (*snapshot.Snapshot, error) {
	if _, err := os.Stat(ref); err == nil {
		return snapshot.ReadFile(ref)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	ctx := cmd.Context()
	store, err := c.openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close(ctx)
	return store.Get(ctx, ref)
}

func printSnapshot(s *snapshot.Snapshot) {
	fmt.Println(StyleTitle.Render(s.Scene) + " " + StyleDim.Render(s.ID))
	printKeyValue("captured", s.CreatedAt.Local().Format(time.DateTime))
	printKeyValue("size", fmt.Sprintf("%g × %g", s.Width, s.Height))
	printKeyValue("failed", fmt.Sprint(s.Report.Failed()))
	fmt.Println()
	for _, v := range s.Views {
		name := StyleValue.Render(v.Name)
		if v.Ambiguous {
			name += " " + StyleWarning.Render("ambiguous")
		}
		fmt.Printf("%s %s\n", name, StyleDim.Render(fmt.Sprintf("(%g, %g, %g, %g)",
			v.Frame.X, v.Frame.Y, v.Frame.Width, v.Frame.Height)))
		for _, c := range v.Constraints {
			printDetail("%s", c)
		}
	}
	for _, g := range s.Grids {
		fmt.Println()
		fmt.Println(StyleTitle.Render("grid " + g.Container))
		printPlan(g.Plan)
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
