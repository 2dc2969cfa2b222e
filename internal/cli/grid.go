package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/cache"
	"github.com/matzehuels/anchor/pkg/grid"
)

type gridOpts struct {
	width       float64
	height      float64
	packing     string
	columns     int
	rows        int
	gap         float64
	border      float64
	asJSON      bool
	interactive bool
	noCache     bool
}

// gridCommand creates the grid planning command.
func (c *CLI) gridCommand() *cobra.Command {
	opts := gridOpts{gap: -1}

	cmd := &cobra.Command{
		Use:   "grid [count]",
		Short: "Plan a grid of equal cells inside a container",
		Long: `Plan a grid of equal square cells inside a container and print the
frame of every cell.

Packing is a name (spread, fill, center, top_leading, ...) or a slot
pattern such as "_I_ _I_", where _ marks a slot that absorbs leftover
space and I a slot fixed at the gap.`,
		Example: `  anchor grid 6 --width 400 --height 300
  anchor grid 5 --packing top_leading --gap 4
  anchor grid --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 0 {
					return fmt.Errorf("count must be a non-negative integer, got %q", args[0])
				}
				count = n
			}
			if opts.interactive {
				return c.runExplorer(count, opts)
			}
			return c.runGrid(cmd, count, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.width, "width", 400, "container width")
	cmd.Flags().Float64Var(&opts.height, "height", 300, "container height")
	cmd.Flags().StringVarP(&opts.packing, "packing", "p", "", "packing name or slot pattern (default spread)")
	cmd.Flags().IntVar(&opts.columns, "columns", 0, "fixed column count")
	cmd.Flags().IntVar(&opts.rows, "rows", 0, "fixed row count")
	cmd.Flags().Float64Var(&opts.gap, "gap", -1, "gap between cells (default standard_spacing)")
	cmd.Flags().Float64Var(&opts.border, "border", 0, "extra inset around the grid")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the plan as JSON")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "explore the grid interactively")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("packing", completePacking)

	return cmd
}

func (c *CLI) gridSpec(count int, opts gridOpts) (grid.Spec, error) {
	packing := grid.DefaultPacking
	if opts.packing != "" {
		var err error
		if packing, err = grid.LookupPacking(opts.packing); err != nil {
			return grid.Spec{}, err
		}
	}
	gap := opts.gap
	if gap < 0 {
		gap = c.Config.StandardSpacing
	}
	return grid.Spec{
		Count:   count,
		Width:   opts.width,
		Height:  opts.height,
		Packing: packing,
		Counts:  grid.Counts{Columns: opts.columns, Rows: opts.rows},
		Gap:     gap,
		Border:  opts.border,
	}, nil
}

func (c *CLI) runGrid(cmd *cobra.Command, count int, opts gridOpts) error {
	ctx := cmd.Context()
	spec, err := c.gridSpec(count, opts)
	if err != nil {
		return err
	}

	store := c.openCache(ctx, opts.noCache)
	defer store.Close()

	key := keyer().PlanKey(cache.PlanKeyOpts{
		Count:   spec.Count,
		Width:   spec.Width,
		Height:  spec.Height,
		Packing: spec.Packing.String(),
		Columns: spec.Counts.Columns,
		Rows:    spec.Counts.Rows,
		Gap:     spec.Gap,
		Border:  spec.Border,
	})
	data, hit, err := cache.GetOrCompute(ctx, store, "plan", key, c.Config.Cache.TTL, func() ([]byte, error) {
		plan, err := grid.Compute(spec)
		if err != nil {
			return nil, err
		}
		return json.Marshal(plan)
	})
	if err != nil {
		return err
	}
	c.Logger.Debug("grid plan", "key", key, "cached", hit)

	if opts.asJSON {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	var plan grid.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return fmt.Errorf("decode cached plan: %w", err)
	}
	printSuccess("Planned %d cells in %g × %g", plan.Count, plan.Width, plan.Height)
	printCacheStatus(hit)
	printPlan(plan)
	return nil
}

func (c *CLI) runExplorer(count int, opts gridOpts) error {
	spec, err := c.gridSpec(count, opts)
	if err != nil {
		return err
	}
	model, err := newExplorer(spec)
	if err != nil {
		return err
	}
	defer model.close()

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("explorer: %w", err)
	}
	if m, ok := final.(*explorer); ok {
		printPlan(m.grid.Plan())
	}
	return nil
}
