// Command widgetgen renders the widgets an inspection document describes,
// optionally bound to a JSON object, and can fill that object interactively.
//
// Settings are resolved with the following precedence (highest first):
//
//  1. command-line flags (--inspection, --path, ...)
//  2. WIDGETGEN_* environment variables (WIDGETGEN_LOG_LEVEL, ...)
//  3. the config file: --config, WIDGETGEN_CONFIG_FILE or ./.widgetgen.yml
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	widgetgen "github.com/goliatone/go-widgetgen"
	"github.com/goliatone/go-widgetgen/internal/logging/gologger"
	"github.com/goliatone/go-widgetgen/pkg/inspection"
	"github.com/goliatone/go-widgetgen/pkg/logging"
	"github.com/goliatone/go-widgetgen/pkg/model"
	"github.com/goliatone/go-widgetgen/pkg/orchestrator"
	"github.com/goliatone/go-widgetgen/pkg/renderers/page"
	"github.com/goliatone/go-widgetgen/pkg/renderers/tui"
)

const envPrefix = "WIDGETGEN"

type settings struct {
	Inspection  string        `mapstructure:"inspection" json:"inspection"`
	Path        string        `mapstructure:"path" json:"path"`
	Object      string        `mapstructure:"object" json:"object"`
	ReadOnly    bool          `mapstructure:"read-only" json:"read-only"`
	Output      string        `mapstructure:"output" json:"output"`
	Interactive bool          `mapstructure:"interactive" json:"interactive"`
	Watch       bool          `mapstructure:"watch" json:"watch"`
	LogLevel    string        `mapstructure:"log-level" json:"log-level"`
	LogFormat   string        `mapstructure:"log-format" json:"log-format"`
	Builders    []string      `mapstructure:"builders" json:"builders"`
	Processors  []string      `mapstructure:"processors" json:"processors"`
	HTTPTimeout time.Duration `mapstructure:"http-timeout" json:"http-timeout"`
	Page        bool          `mapstructure:"page" json:"page"`
	Layout      string        `mapstructure:"layout" json:"layout"`
	Title       string        `mapstructure:"title" json:"title"`
}

func (s settings) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Inspection, validation.Required),
		validation.Field(&s.Path, validation.Required),
		validation.Field(&s.LogFormat, validation.In("console", "json", "pretty")),
		validation.Field(&s.Watch, validation.Empty.When(s.Interactive).Error("cannot be combined with interactive")),
		validation.Field(&s.HTTPTimeout, validation.Min(time.Duration(0))),
	)
}

type app struct {
	out     io.Writer
	errOut  io.Writer
	filler  []tui.Option
	watcher func(ctx context.Context, location string, logger logging.Logger, render func(context.Context) error) error
}

func newRootCommand(out, errOut io.Writer, fillerOptions ...tui.Option) *cobra.Command {
	a := &app{out: out, errOut: errOut, filler: fillerOptions, watcher: watchFile}
	v := viper.New()
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "widgetgen",
		Short: "Render widgets for an inspected object",
		Long: `widgetgen reads an inspection document describing the fields of a type,
builds the matching widgets and prints them as HTML.

Examples:
  widgetgen --inspection person.yaml --path person
  widgetgen -i person.yaml -p person --object ada.json --read-only
  widgetgen -i person.yaml -p person --object ada.json --interactive
  widgetgen -i person.yaml -p person --watch --page --output form.html`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return initConfig(v, cfgFile)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg settings
			if err := v.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("widgetgen: decode settings: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("widgetgen: invalid settings: %w", err)
			}
			return a.run(cmd.Context(), cfg)
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .widgetgen.yml, can also use WIDGETGEN_CONFIG_FILE)")

	flags := cmd.Flags()
	flags.StringP("inspection", "i", "", "inspection document path or http(s) URL")
	flags.StringP("path", "p", "", "inspected path to render, e.g. person")
	flags.String("object", "", "JSON file holding the object to bind")
	flags.Bool("read-only", false, "render every field read-only")
	flags.StringP("output", "o", "", "output file (stdout if empty)")
	flags.Bool("interactive", false, "fill the form in the terminal and print the object as JSON")
	flags.BoolP("watch", "w", false, "re-render whenever the inspection document changes")
	flags.StringP("log-level", "l", "info", "log level (trace, debug, info, warn, error)")
	flags.String("log-format", "console", "log format (console, json, pretty)")
	flags.StringSlice("builders", nil, "widget builders by name, in dispatch order")
	flags.StringSlice("processors", nil, "widget processors by name, in chain order")
	flags.Duration("http-timeout", 10*time.Second, "timeout for remote inspection documents")
	flags.Bool("page", false, "wrap the widgets in a complete HTML page")
	flags.String("layout", "", "pongo2 layout file for --page (implies --page)")
	flags.String("title", "", "page title (defaults to the humanized path)")
	_ = v.BindPFlags(flags)

	return cmd
}

// initConfig resolves the config file and enables WIDGETGEN_ environment
// overrides. A missing default config file is not an error.
func initConfig(v *viper.Viper, cfgFile string) error {
	explicit := cfgFile
	if explicit == "" {
		explicit = os.Getenv(envPrefix + "_CONFIG_FILE")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".widgetgen")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("widgetgen: read config: %w", err)
	}
	return nil
}

func (a *app) run(ctx context.Context, cfg settings) error {
	if ctx == nil {
		ctx = context.Background()
	}

	provider, err := gologger.NewProvider(gologger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return err
	}
	logger := logging.Named(provider, "widgetgen")

	render := func(ctx context.Context) error {
		return a.renderOnce(ctx, cfg, provider, logger)
	}
	if cfg.Watch {
		return a.watcher(ctx, cfg.Inspection, logger, render)
	}
	return render(ctx)
}

func (a *app) renderOnce(ctx context.Context, cfg settings, provider logging.Provider, logger logging.Logger) error {
	doc, err := widgetgen.LoadDocument(ctx, cfg.Inspection, inspection.WithHTTPFallback(cfg.HTTPTimeout))
	if err != nil {
		return err
	}

	object, err := loadObject(cfg.Object)
	if err != nil {
		return err
	}

	gen := widgetgen.NewOrchestrator(
		orchestrator.WithInspector(doc),
		orchestrator.WithLogger(logging.Named(provider, "orchestrator")),
		orchestrator.WithPipeline(cfg.Builders, cfg.Processors),
	)
	form, err := gen.Build(ctx, orchestrator.Request{
		ToInspect: object,
		Path:      cfg.Path,
		ReadOnly:  cfg.ReadOnly,
	})
	if err != nil {
		return err
	}
	logger.Debug("widgetgen.form.built", "pass", form.ID, "path", cfg.Path, "widgets", len(form.Widgets()))

	if !cfg.Interactive {
		out, err := renderHTML(form, cfg)
		if err != nil {
			return fmt.Errorf("widgetgen: render: %w", err)
		}
		return a.write(cfg.Output, out, logger)
	}

	options := append([]tui.Option{
		tui.WithOutput(a.errOut),
		tui.WithLogger(logging.Named(provider, "tui")),
	}, a.filler...)
	if err := tui.New(options...).Fill(ctx, form); err != nil {
		return err
	}
	if err := form.Save(); err != nil {
		return fmt.Errorf("widgetgen: save: %w", err)
	}
	coerceObject(ctx, doc, cfg.Path, object, orchestrator.DefaultMaxDepth)

	data, err := json.MarshalIndent(object, "", "  ")
	if err != nil {
		return fmt.Errorf("widgetgen: encode object: %w", err)
	}
	return a.write(cfg.Output, string(data), logger)
}

func renderHTML(form *orchestrator.Form, cfg settings) (string, error) {
	if !cfg.Page && cfg.Layout == "" {
		return form.HTML()
	}

	var options []page.Option
	if cfg.Layout != "" {
		ext := filepath.Ext(cfg.Layout)
		options = append(options,
			page.WithBaseDir(filepath.Dir(cfg.Layout)),
			page.WithExtension(ext),
			page.WithLayout(strings.TrimSuffix(filepath.Base(cfg.Layout), ext)),
		)
	}
	renderer, err := page.New(options...)
	if err != nil {
		return "", err
	}

	title := cfg.Title
	if title == "" {
		segments := strings.Split(cfg.Path, ".")
		title = model.Humanize(segments[len(segments)-1])
	}
	return renderer.Render(form, page.Data{Title: title})
}

func (a *app) write(path, content string, logger logging.Logger) error {
	if path == "" {
		_, err := fmt.Fprintln(a.out, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return fmt.Errorf("widgetgen: write output: %w", err)
	}
	logger.Info("widgetgen.output.written", "file", path)
	return nil
}
