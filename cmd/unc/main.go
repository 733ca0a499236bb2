package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uncreator/internal/config"
	"uncreator/internal/logging"
)

var version = "dev"

// options holds the raw flag values for one invocation.
type options struct {
	configPath    string
	verbose       bool
	input         string
	output        string
	numbers       int
	caseSensitive bool
	specialChars  bool
	subsPath      string
	workers       int
	compress      bool
	defaults      bool
	saveConfig    string
}

// app is the state shared between the root command's hooks.
type app struct {
	opts   options
	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "unc -i inputfile [-o outputfile] [-n N] [-c] [-s]",
		Short: "Generate candidate usernames from a list of first and last names",
		Long: `unc reads "firstname lastname" pairs, one per line, and writes every
username that common naming conventions would produce for them:

  john, doe, johndoe, john.doe, jdoe, j.doe, doejohn, doej, djohn

Each name pair is processed concurrently. Optional expansions append
numbered variants (-n), lowercased variants (-c) and character
substitutions such as a=@ (-s). Duplicates are kept.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.generate(cmd)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&a.opts.input, "inputfile", "i", "", "File containing first and second names (e.g. John Doe); glob patterns allowed")
	f.StringVarP(&a.opts.output, "outputfile", "o", "", "Output file (default: usernames_<timestamp>)")
	f.IntVarP(&a.opts.numbers, "numberadd", "n", config.NoNumbers, "Also create usernames with appended numbers 0..N (-1 disables)")
	f.BoolVarP(&a.opts.caseSensitive, "casesensitive", "c", false, "Also create lowercased usernames (doubles the list)")
	f.BoolVarP(&a.opts.specialChars, "specialchars", "s", false, "Also create usernames with character substitutions (e.g. a=@)")
	f.StringVar(&a.opts.subsPath, "subs", "", "Substitution rules file, key=value per line or YAML mapping (default: common_substitutions.txt)")
	f.IntVar(&a.opts.workers, "workers", 0, "Maximum records processed at once (0: one goroutine per record)")
	f.BoolVar(&a.opts.compress, "compress", false, "Write the output as an LZ4 frame")
	f.BoolVar(&a.opts.defaults, "defaults", false, "Prepend common default account names (admin, root, ...)")
	f.StringVar(&a.opts.saveConfig, "save-config", "", "Write the resolved configuration to this YAML file and exit")
	f.StringVar(&a.opts.configPath, "config", "", "YAML config file (default: "+config.DefaultConfigFile+" if present)")
	cmd.PersistentFlags().BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable verbose logging")

	return cmd
}

// setup resolves configuration (file, environment, flags) and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.opts.configPath
	if path == "" {
		path = config.DefaultConfigFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	a.applyFlags(cmd, &cfg.Run)
	a.cfg = cfg

	logger, err := logging.New(cfg.Logging, a.opts.verbose)
	if err != nil {
		return err
	}
	a.logger = logger
	logging.For(logger, logging.CategoryBoot).Debug("Configuration resolved",
		zap.String("config", path),
		zap.Any("run", cfg.Run))
	return nil
}

// applyFlags lets explicitly set flags win over file and environment values.
func (a *app) applyFlags(cmd *cobra.Command, run *config.RunConfig) {
	f := cmd.Flags()
	if f.Changed("inputfile") {
		run.InputPath = a.opts.input
	}
	if f.Changed("outputfile") {
		run.OutputPath = a.opts.output
	}
	if f.Changed("numberadd") {
		run.NumberRange = a.opts.numbers
	}
	if f.Changed("casesensitive") {
		run.CaseSensitive = a.opts.caseSensitive
	}
	if f.Changed("specialchars") {
		run.SpecialChars = a.opts.specialChars
	}
	if f.Changed("subs") {
		run.SubstitutionsPath = a.opts.subsPath
	}
	if f.Changed("workers") {
		run.Workers = a.opts.workers
	}
	if f.Changed("compress") {
		run.Compress = a.opts.compress
	}
	if f.Changed("defaults") {
		run.IncludeDefaults = a.opts.defaults
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
