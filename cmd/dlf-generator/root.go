package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dlf-generator/internal/config"
	"dlf-generator/internal/manifest"
)

// app carries the state shared by all commands.
type app struct {
	v       *viper.Viper
	cfgFile string
	verbose bool

	logger *log.Logger
	cfg    *config.Config
	source string
}

func newRootCommand() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:   "dlf-generator",
		Short: "Generate Go accessors for digital linear filter tables",
		Long: titleStyle.Render("dlf-generator") + subtitleStyle.Render(" - Go accessors for digital linear filters") + `

dlf-generator reads a filters.json manifest describing Hankel and Fourier
filter tables and emits a Go package with one lazily loading accessor per
filter, documented from the table's own header.

` + subtitleStyle.Render("Examples:") + `
  dlf-generator validate                 Check the manifest and its tables
  dlf-generator gen --out ./libdlf       Generate the accessor package
  dlf-generator inspect hankel kong_61   Show the documentation of a filter
  dlf-generator verify                   Check filters against Gaussian pairs`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.setupLogger(cmd.ErrOrStderr())
		},
	}

	d := config.DefaultConfig()

	pf := root.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.cfgFile, "config", "", "config file (default is ./"+config.FileName+" when present)")
	pf.String("manifest", d.Manifest, "path of the filter manifest")
	pf.String("root", d.Root, "directory filter files are relative to (default is the parent of the manifest directory)")
	pf.String("marker", d.Marker, "comment marker of table headers")
	pf.String("sentinel", d.Sentinel, "phrase on the last header line")
	a.bind(pf, config.KeyManifest, config.KeyRoot, config.KeyMarker, config.KeySentinel)

	root.AddCommand(
		a.genCommand(),
		a.validateCommand(),
		a.listCommand(),
		a.inspectCommand(),
		a.verifyCommand(),
		a.configCommand(),
	)

	return root
}

// bind connects flags to viper keys. Flag names use dashes, keys use
// underscores.
func (a *app) bind(flags *pflag.FlagSet, keys ...string) {
	for _, key := range keys {
		if err := a.v.BindPFlag(key, flags.Lookup(flagName(key))); err != nil {
			panic(fmt.Sprintf("binding flag for %s: %v", key, err))
		}
	}
}

func flagName(key string) string {
	switch key {
	case config.KeyPackageName:
		return "package"
	case config.KeyImportPath:
		return "import-path"
	case config.KeyKeepText:
		return "keep-text"
	default:
		return key
	}
}

func (a *app) setupLogger(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	a.logger = log.NewWithOptions(w, log.Options{Prefix: "dlf-generator"})
	if a.verbose {
		a.logger.SetLevel(log.DebugLevel)
	}
}

// load resolves the configuration once per invocation.
func (a *app) load() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	cfg, source, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return nil, err
	}

	if source != "" {
		a.logger.Debug("loaded config", "file", source)
	}

	a.cfg, a.source = cfg, source

	return cfg, nil
}

// loadManifest loads the configured manifest. Format errors exit with
// exitInvalid.
func (a *app) loadManifest() (*config.Config, *manifest.Manifest, error) {
	cfg, err := a.load()
	if err != nil {
		return nil, nil, err
	}

	m, err := manifest.Load(cfg.Manifest)
	if err != nil {
		return nil, nil, &ExitError{Code: exitInvalid, Err: err}
	}

	a.logger.Debug("loaded manifest", "file", cfg.Manifest, "transforms", len(m.Transforms), "filters", m.Len())

	return cfg, m, nil
}
