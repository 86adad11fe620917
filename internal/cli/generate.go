package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fourchimps/crudgen/internal/config"
	"github.com/fourchimps/crudgen/internal/gen"
	"github.com/fourchimps/crudgen/internal/logger"
	"github.com/fourchimps/crudgen/internal/module"
	"github.com/fourchimps/crudgen/internal/prompt"
	"github.com/fourchimps/crudgen/internal/render"
	"github.com/fourchimps/crudgen/internal/types"
)

// ErrAborted is returned when the generation is declined.
var ErrAborted = errors.New("command aborted")

// Collaborator factories, replaced in tests.
var (
	newMetadataProvider = func(r gen.ModuleResolver) gen.MetadataProvider { return gen.NewEntProvider(r) }
	newPromptDriver     = prompt.NewSurveyDriver
)

type crudOptions struct {
	entity        string
	target        string
	routePrefix   string
	withWrite     bool
	format        string
	noInteraction bool
	dryRun        bool
	configPath    string
	workDir       string
}

// GenerateCmd groups the generators.
func GenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate code from ent schemas",
	}
	cmd.AddCommand(newGenerateCrudCmd())
	return cmd
}

func newGenerateCrudCmd() *cobra.Command {
	opts := &crudOptions{}
	cmd := &cobra.Command{
		Use:   "crud",
		Short: "Generate a CRUD controller, views and form for an ent entity",
		Long: `Generate a CRUD based on an ent schema entity.

The controller, its views and, with --with-write, the form type are written
into the target module:
  - <target>/Controller/<Entity>Controller.go
  - <target>/Resources/views/<Entity>/{index,show,new,edit}.html.tmpl
  - <target>/Form/<Entity>Type.go
  - <target>/Resources/config/routing/<entity>.{yml,xml,go} (non annotation formats)

Examples:
  crudgen generate crud --entity=Blog:Post --target=Admin
  crudgen generate crud --entity=Blog:Post --target=Admin --route-prefix=/post --with-write --format=yml --no-interaction`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerateCrud(cmd.Context(), cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.entity, "entity", "", "The entity class name to initialize (shortcut notation)")
	f.StringVar(&opts.target, "target", "", "The module that will host the generated code")
	f.StringVar(&opts.routePrefix, "route-prefix", "", "The route prefix")
	f.BoolVar(&opts.withWrite, "with-write", false, "Whether or not to generate create, new and delete actions")
	f.StringVar(&opts.format, "format", "", "Use the format for configuration files (annotation, yml, xml or go)")
	f.BoolVarP(&opts.noInteraction, "no-interaction", "n", false, "Do not ask any interactive question")
	f.BoolVar(&opts.dryRun, "dry-run", false, "Show the generated files without writing them")
	f.StringVar(&opts.configPath, "config", "", "Path of the configuration file (default "+config.DefaultFile+")")
	f.StringVar(&opts.workDir, "workdir", ".", "Directory inside the Go module to generate into")
	return cmd
}

func runGenerateCrud(ctx context.Context, cmd *cobra.Command, opts *crudOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Env); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	log := logger.Get()
	defer logger.Sync()

	resolver, err := module.NewResolver(opts.workDir, module.WithModules(cfg.Modules))
	if err != nil {
		return fmt.Errorf("failed to locate go module: %w", err)
	}
	metadata := newMetadataProvider(resolver)

	req := types.GenerationRequest{
		Entity:      opts.entity,
		Target:      opts.target,
		RoutePrefix: opts.routePrefix,
		WithWrite:   cfg.Defaults.WithWrite,
		Format:      cfg.Defaults.Format,
	}
	if cmd.Flags().Changed("with-write") {
		req.WithWrite = opts.withWrite
	}
	if cmd.Flags().Changed("format") {
		req.Format = opts.format
	}

	if !opts.noInteraction {
		wizard := prompt.NewWizard(newPromptDriver(),
			prompt.WithEntityCheck(func(ref types.EntityRef) error {
				_, err := metadata.Metadata(ref)
				return err
			}),
			prompt.WithModuleCheck(func(name string) error {
				_, err := resolver.Resolve(name)
				return err
			}),
		)
		if req, err = wizard.Run(ctx, req); err != nil {
			return err
		}
		ok, err := wizard.Confirm(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, color.New(color.FgRed).Sprint("Command aborted"))
			return ErrAborted
		}
	} else if req.Entity == "" || req.Target == "" {
		return &types.InvalidInputError{Field: "entity/target", Reason: "--entity and --target are required with --no-interaction"}
	}

	renderOpts := []render.Option{render.WithLogger(log)}
	if cfg.SkeletonDir != "" {
		renderOpts = append(renderOpts, render.WithBaseDir(cfg.SkeletonDir))
	}
	renderer, err := render.New(renderOpts...)
	if err != nil {
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, color.New(color.FgWhite, color.BgBlue).Sprint(" CRUD generation "))
	fmt.Fprintln(out)

	g := gen.New(gen.Config{DryRun: opts.dryRun}, metadata, resolver, renderer, gen.WithLogger(log))
	res, err := g.Generate(req)
	if err != nil {
		return err
	}
	printResult(out, resolver.Root(), res, opts.dryRun, log)
	for _, err := range res.Errors {
		if !gen.IsRecoverable(err) {
			return fmt.Errorf("generation failed: %w", err)
		}
	}
	return nil
}

func printResult(out io.Writer, root string, res *gen.Result, dryRun bool, log *zap.SugaredLogger) {
	verb := color.New(color.FgGreen).Sprint("created")
	if dryRun {
		verb = color.New(color.FgYellow).Sprint("planned")
	}
	for _, f := range res.Files {
		fmt.Fprintf(out, "  %s %s (%s)\n", verb, relPath(root, f.Path), humanize.Bytes(uint64(len(f.Content))))
	}
	for _, err := range res.Errors {
		label := "skipped"
		if !gen.IsRecoverable(err) {
			label = "failed"
		}
		log.Debugw("step "+label, "error", err)
		fmt.Fprintf(out, "  %s %v\n", color.New(color.FgRed).Sprint(label), err)
	}

	if dryRun {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "(dry-run mode - no files written)")
		for _, f := range res.Files {
			fmt.Fprintf(out, "\n--- %s ---\n%s", relPath(root, f.Path), f.Content)
		}
	}

	if len(res.NextSteps) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Next steps:")
		for i, step := range res.NextSteps {
			fmt.Fprintf(out, "  %d. %s\n", i+1, step)
		}
	}
	fmt.Fprintln(out)
	if res.Failed() {
		fmt.Fprintln(out, color.New(color.FgYellow).Sprintf("Generation finished with %d skipped step(s)", len(res.Errors)))
	} else {
		fmt.Fprintln(out, color.New(color.FgGreen).Sprint("Everything is OK! Now get to work :)"))
	}
}

func relPath(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}

// Exit maps an error to the process exit code.
func Exit(err error) {
	if err == nil {
		return
	}
	if !errors.Is(err, ErrAborted) {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint(err))
	}
	os.Exit(1)
}
