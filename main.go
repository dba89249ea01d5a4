package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/df07/go-scanline-pathtracer/pkg/core"
	"github.com/df07/go-scanline-pathtracer/pkg/loaders"
	"github.com/df07/go-scanline-pathtracer/pkg/renderer"
	"github.com/df07/go-scanline-pathtracer/pkg/scene"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// renderFlags holds the render command line; zero-valued overrides are only
// applied when the flag was set explicitly
type renderFlags struct {
	scene    string
	width    int
	height   int
	samples  int
	depth    int
	workers  int
	seed     int64
	output   string
	logLevel string
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pathtracer",
		Short:        "Scanline-parallel Monte Carlo path tracer",
		SilenceUsage: true,
	}
	root.AddCommand(newRenderCommand(), newScenesCommand(), newDescribeCommand())
	return root
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}
	defaults := renderer.DefaultSamplingConfig()

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a built-in scene or a scene file to an image",
		Long: "Render a built-in scene (see 'pathtracer scenes') or a .yaml/.toml scene file.\n" +
			"Output defaults to output/<scene>/render_<timestamp>.png; .bmp and .tif are also supported.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.scene, "scene", "s", "random", "Built-in scene ID or path to a .yaml/.toml scene file")
	f.IntVar(&flags.width, "width", defaults.Width, "Image width in pixels")
	f.IntVar(&flags.height, "height", defaults.Height, "Image height in pixels")
	f.IntVar(&flags.samples, "samples", defaults.SamplesPerPixel, "Samples per pixel")
	f.IntVar(&flags.depth, "depth", defaults.MaxDepth, "Maximum ray bounce depth")
	f.IntVarP(&flags.workers, "workers", "w", defaults.NumWorkers, "Number of parallel workers (0 = use CPU count)")
	f.Int64Var(&flags.seed, "seed", defaults.Seed, "Random seed for scene layout and sampling")
	f.StringVarP(&flags.output, "output", "o", "", "Output image path (.png, .bmp, .tif)")
	f.StringVar(&flags.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	return cmd
}

func runRender(cmd *cobra.Command, flags *renderFlags) error {
	logger, err := newLogger(cmd.ErrOrStderr(), flags.logLevel)
	if err != nil {
		return err
	}

	if flags.output != "" {
		if err := loaders.CheckImagePath(flags.output); err != nil {
			return err
		}
	}

	selectedScene, err := createScene(flags.scene, flags.seed)
	if err != nil {
		return err
	}
	applyRenderOverrides(cmd, flags, selectedScene)

	logger.Printf("Using %s scene (%d spheres)...\n", selectedScene.Name, selectedScene.GetPrimitiveCount())

	raytracer, err := selectedScene.NewRaytracer(logger)
	if err != nil {
		return err
	}

	buffer, stats, err := raytracer.Render(cmd.Context())
	if err != nil {
		return err
	}

	img := buffer.ToRGBA()
	logger.Printf("Samples per pixel: %.1f, traced %d camera rays in %v, average luminance %.3f\n",
		stats.AverageSamples, stats.TotalSamples, stats.Elapsed, renderer.CalculateAverageLuminance(img))

	filename := flags.output
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join("output", selectedScene.Name, fmt.Sprintf("render_%s.png", timestamp))
	}
	if err := loaders.SaveImage(filename, img); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Render saved as %s\n", filename)
	return nil
}

// createScene resolves a built-in scene ID or a scene file path
func createScene(sceneType string, seed int64) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, errors.New("scene name is empty")
	}
	if loaders.IsSceneFile(sceneType) {
		return loaders.LoadScene(sceneType)
	}
	return scene.NewBuiltinScene(sceneType, seed)
}

// applyRenderOverrides lets explicit flags win over the scene's own settings
func applyRenderOverrides(cmd *cobra.Command, flags *renderFlags, s *scene.Scene) {
	changed := cmd.Flags().Changed
	config := &s.SamplingConfig

	if changed("width") {
		config.Width = flags.width
	}
	if changed("height") {
		config.Height = flags.height
	}
	if changed("samples") {
		config.SamplesPerPixel = flags.samples
	}
	if changed("depth") {
		config.MaxDepth = flags.depth
	}
	if changed("workers") {
		config.NumWorkers = flags.workers
	}
	if changed("seed") {
		config.Seed = flags.seed
	}
}

func newScenesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenes",
		Short: "List the built-in scenes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, info := range scene.ListBuiltinScenes() {
				fmt.Fprintf(out, "  %-10s %s - %s\n", info.ID, info.DisplayName, info.Description)
			}
			return nil
		},
	}
}

func newDescribeCommand() *cobra.Command {
	var (
		format string
		output string
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "describe <scene>",
		Short: "Write a built-in scene as a YAML or TOML scene file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := scene.NewBuiltinScene(args[0], seed)
			if err != nil {
				return err
			}
			desc := scene.Describe(s)

			if output != "" {
				return loaders.SaveSceneFile(output, desc)
			}
			return loaders.EncodeSceneDescription(cmd.OutOrStdout(), desc, loaders.SceneFormat(format))
		},
	}

	f := cmd.Flags()
	f.StringVarP(&format, "format", "f", string(loaders.SceneFormatYAML), "Output format when writing to stdout: yaml or toml")
	f.StringVarP(&output, "output", "o", "", "Scene file to write; the extension selects the format")
	f.Int64Var(&seed, "seed", renderer.DefaultSamplingConfig().Seed, "Random seed for the scene layout")
	return cmd
}

// newLogger creates a text logger at the named level
func newLogger(w io.Writer, level string) (core.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return core.NewTextLogger(w, lvl), nil
}
