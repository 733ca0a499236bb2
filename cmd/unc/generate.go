package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"uncreator/internal/config"
	"uncreator/internal/dispatch"
	"uncreator/internal/expand"
	"uncreator/internal/logging"
	"uncreator/internal/sink"
	"uncreator/internal/subs"
)

// generate runs one wordlist generation pass.
func (a *app) generate(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	run := &a.cfg.Run

	if a.opts.saveConfig != "" {
		return a.saveConfig(cmd)
	}
	if run.InputPath == "" {
		fmt.Fprintln(out, errorStyle.Render("[-]"), "No inputfile specified")
		fmt.Fprintln(out, cmd.UsageString())
		return &reportedError{err: config.ErrNoInput}
	}
	if run.OutputPath == "" {
		run.OutputPath = config.DefaultOutputPath(time.Now())
		if run.Compress {
			run.OutputPath += ".lz4"
		}
		fmt.Fprintln(out, errorStyle.Render("[-]"), "No outputfile specified, creating default file", run.OutputPath)
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	var table *subs.Table
	if run.SpecialChars {
		t, err := subs.Resolve(run.SubstitutionsPath)
		if err != nil {
			return err
		}
		table = t
		logging.For(a.logger, logging.CategorySubs).Debug("Substitutions loaded",
			zap.String("path", run.SubstitutionsPath),
			zap.Int("rules", table.Len()),
			zap.Strings("keys", ruleKeys(table)))
	}

	pipeline, err := expand.New(*run, table)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, okStyle.Render("[+]"), "Starting creating username file")

	w, err := sink.Open(run.OutputPath, sink.Options{
		Compress: run.Compress,
		Logger:   logging.For(a.logger, logging.CategorySink),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := dispatch.New(*run, pipeline, w, logging.For(a.logger, logging.CategoryDispatch))
	d.OnLaunched(func(n int) { printLaunched(out, n) })
	sum, runErr := d.Run(ctx)
	closeErr := w.Close()

	if sum != nil {
		lines, bytes := w.Stats()
		printSummary(out, sum, w.Path(), lines, bytes, runErr == nil)
	}
	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return fmt.Errorf("interrupted: %w", runErr)
		}
		return runErr
	}
	return closeErr
}

// saveConfig writes the resolved configuration instead of generating.
func (a *app) saveConfig(cmd *cobra.Command) error {
	if err := a.cfg.Save(a.opts.saveConfig); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("[+]"), "Configuration saved to", a.opts.saveConfig)
	return nil
}

func ruleKeys(t *subs.Table) []string {
	rules := t.Rules()
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = r.Key
	}
	return keys
}
