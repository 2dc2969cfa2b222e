package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/anchor/pkg/attribute"
	"github.com/matzehuels/anchor/pkg/cache"
	"github.com/matzehuels/anchor/pkg/overlay"
)

type overlayOpts struct {
	format     string
	start      string
	attributes []string
	seed       uint64
	output     string
	noCache    bool
}

// overlayCommand creates the overlay rendering command.
func (c *CLI) overlayCommand() *cobra.Command {
	var opts overlayOpts

	cmd := &cobra.Command{
		Use:   "overlay <scene.toml>",
		Short: "Render the constraint overlay of a scene",
		Long: `Render a diagnostic overlay of the constraints held by a scene: one
marker per constrained attribute, coloured per view, and connectors
between the items of two-item constraints.

Formats: text (terminal), dot (Graphviz source) and svg.`,
		Example: `  anchor overlay login.toml
  anchor overlay login.toml --format svg -o login.svg
  anchor overlay login.toml --start form --attributes width,height`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeScene,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOverlay(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, dot or svg")
	cmd.Flags().StringVar(&opts.start, "start", "", "only show this view and its descendants")
	cmd.Flags().StringSliceVar(&opts.attributes, "attributes", nil, "only show constraints on these attributes")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 1, "palette shuffle seed")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormat)
	_ = cmd.RegisterFlagCompletionFunc("attributes", completeAttributes)

	return cmd
}

func (c *CLI) runOverlay(cmd *cobra.Command, path string, opts overlayOpts) error {
	ctx := cmd.Context()
	format, err := overlay.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	attrs := make([]attribute.Attribute, 0, len(opts.attributes))
	for _, name := range opts.attributes {
		a, ok := attribute.Parse(strings.TrimSpace(name))
		if !ok {
			return fmt.Errorf("unknown attribute %q", name)
		}
		attrs = append(attrs, a)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	store := c.openCache(ctx, opts.noCache)
	defer store.Close()

	names := make([]string, len(attrs))
	for i, a := range attrs {
		names[i] = a.String()
	}
	key := keyer().OverlayKey(c.sceneHash(raw), cache.OverlayKeyOpts{
		Format:     string(format),
		Start:      opts.start,
		Attributes: names,
		Seed:       opts.seed,
	})
	data, hit, err := cache.GetOrCompute(ctx, store, "overlay", key, c.Config.Cache.TTL, func() ([]byte, error) {
		res, err := c.buildScene(path)
		if err != nil {
			return nil, err
		}
		defer res.Close()

		build := []overlay.Option{overlay.WithSeed(opts.seed)}
		if len(attrs) > 0 {
			build = append(build, overlay.WithAttributes(attrs...))
		}
		if opts.start != "" {
			v, ok := res.Resolve(opts.start)
			if !ok {
				return nil, fmt.Errorf("view %q not found in %s", opts.start, path)
			}
			build = append(build, overlay.WithStart(v))
		}
		return overlay.Render(ctx, overlay.Build(res.Engine, res.Root, build...), format)
	})
	if err != nil {
		return err
	}
	c.Logger.Debug("overlay", "format", format, "key", key, "cached", hit)

	if opts.output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write overlay: %w", err)
	}
	printSuccess("Rendered %s overlay", format)
	printCacheStatus(hit)
	printFile(opts.output)
	return nil
}
