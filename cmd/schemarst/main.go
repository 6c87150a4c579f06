// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/schemarst

// schemarst generates reStructuredText docs from JSON and YAML schemas.
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
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"

	"github.com/woozymasta/schemarst"
)

// excludeNothing is the --excluded-key value that keeps every schema keyword.
const excludeNothing = "none"

var (
	Version    = "dev"
	Commit     = "unknown"
	BuildTime  = time.Unix(0, 0)
	URL        = "https://github.com/woozymasta/schemarst"
	_buildTime string
)

// cliOptions describes schemarst CLI flags and subcommands.
type cliOptions struct {
	Version versionCommand `command:"version" description:"Print version information"`
	Convert convertCommand `command:"convert" description:"Convert a schema folder into reStructuredText with index pages"`
	Render  renderCommand  `command:"render" description:"Convert one schema file to reStructuredText"`
	Watch   watchCommand   `command:"watch" description:"Convert a schema folder and re-convert it on changes"`
	Check   checkCommand   `command:"check" description:"Report generated documents that are missing or out of date"`
}

// conversionFlags groups tree building flags shared by all conversion commands.
type conversionFlags struct {
	ExcludedKey       string `short:"e" long:"excluded-key" description:"Comma separated schema keywords to ignore, or \"none\" (default: uniqueItems,additionalProperties,$schema; env SCHEMARST_EXCLUDED_KEYS)"`
	IndexWrappers     bool   `long:"index-wrappers" description:"Label anonymous list members by position instead of \"element\""`
	KeepWrapperLabels bool   `long:"keep-wrapper-labels" description:"Do not replace anonymous list member labels with their title"`
}

// batchFlags groups directory conversion flags.
type batchFlags struct {
	Workers int  `short:"j" long:"workers" description:"Parallel conversions (default: CPU count; env SCHEMARST_WORKERS)"`
	Verbose bool `short:"v" long:"verbose" description:"Log progress to stderr"`
}

// folderArgs are input and output folder positional arguments.
type folderArgs struct {
	Input  string `positional-arg-name:"schemas_folder" description:"Folder where schemas are placed" required:"yes"`
	Output string `positional-arg-name:"rst_output_folder" description:"Folder where reStructuredText files will be written" required:"yes"`
}

// convertCommand converts a schema folder once.
type convertCommand struct {
	runner *cliRunner
	Args   folderArgs `positional-args:"yes"`

	ConversionFlags conversionFlags `group:"Conversion"`
	BatchFlags      batchFlags      `group:"Batch"`
}

// Execute runs convert subcommand.
func (command *convertCommand) Execute(_ []string) error {
	return command.runner.runConvert(command.Args, command.ConversionFlags, command.BatchFlags)
}

// renderCommand converts a single schema.
type renderCommand struct {
	runner *cliRunner
	Args   struct {
		Input  string `positional-arg-name:"input" description:"Input schema file path (optional; stdin when omitted)"`
		Output string `positional-arg-name:"output" description:"Output reStructuredText file path (optional; stdout when omitted)"`
	} `positional-args:"yes"`

	RootName        string          `short:"n" long:"root-name" description:"Document root label used in anchors (default: input file name with .json extension)"`
	ConversionFlags conversionFlags `group:"Conversion"`
}

// Execute runs render subcommand.
func (command *renderCommand) Execute(_ []string) error {
	return command.runner.runRender(command.Args.Input, command.Args.Output, command.RootName, command.ConversionFlags)
}

// watchCommand converts a schema folder on every change.
type watchCommand struct {
	runner *cliRunner
	Args   folderArgs `positional-args:"yes"`

	ConversionFlags conversionFlags `group:"Conversion"`
	BatchFlags      batchFlags      `group:"Batch"`
}

// Execute runs watch subcommand.
func (command *watchCommand) Execute(_ []string) error {
	return command.runner.runWatch(command.Args, command.ConversionFlags, command.BatchFlags)
}

// checkCommand compares generated documents with fresh renderings.
type checkCommand struct {
	runner *cliRunner
	Args   folderArgs `positional-args:"yes"`

	ConversionFlags conversionFlags `group:"Conversion"`
	BatchFlags      batchFlags      `group:"Batch"`
}

// Execute runs check subcommand.
func (command *checkCommand) Execute(_ []string) error {
	return command.runner.runCheck(command.Args, command.ConversionFlags, command.BatchFlags)
}

// versionCommand prints version information.
type versionCommand struct {
	runner *cliRunner
}

// Execute runs version subcommand.
func (command *versionCommand) Execute(_ []string) error {
	command.runner.printVersionInfo()
	return nil
}

// cliRunner executes CLI operations with custom IO streams.
type cliRunner struct {
	stdin       io.Reader
	stdout      io.Writer
	stderr      io.Writer
	programName string
	colorize    bool
}

func init() {
	if _buildTime != "" {
		if t, err := time.Parse(time.RFC3339, _buildTime); err == nil {
			BuildTime = t.UTC()
		}
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes CLI logic and returns process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	return runWithIO(args, os.Stdin, stdout, stderr)
}

// runWithIO executes CLI logic with custom stdin, for tests.
func runWithIO(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	programName := strings.TrimSpace(os.Args[0])
	if programName == "" {
		programName = "schemarst"
	}

	programName = filepath.Base(programName)
	runner := cliRunner{
		programName: programName,
		stdin:       stdin,
		stdout:      stdout,
		stderr:      stderr,
		colorize:    isColorTerminal(stdout),
	}

	return runner.run(args)
}

// run parses CLI args and maps errors to process exit codes.
func (runner *cliRunner) run(args []string) int {
	err := parseCLIArgs(args, runner)
	if err == nil {
		return 0
	}

	var flagErr *flags.Error
	if errors.As(err, &flagErr) {
		if flagErr.Type == flags.ErrHelp {
			writeCLIError(runner.stdout, err)
			return 0
		}

		writeCLIError(runner.stderr, err)
		return 2
	}

	writeCLIError(runner.stderr, err)
	return 1
}

// runConvert converts a schema folder and prints one status line per file.
func (runner *cliRunner) runConvert(args folderArgs, conversion conversionFlags, batch batchFlags) error {
	opt, err := runner.batchOptions(conversion, batch)
	if err != nil {
		return err
	}

	report, err := schemarst.ConvertDir(context.Background(), args.Input, args.Output, opt)
	if err != nil {
		return fmt.Errorf("convert %q: %w", args.Input, err)
	}

	runner.printReport(report)
	return nil
}

// runRender converts one schema from file or stdin to file or stdout.
func (runner *cliRunner) runRender(inputPath, outputPath, rootName string, conversion conversionFlags) error {
	opt, err := runner.renderOptions(conversion)
	if err != nil {
		return err
	}

	data, sourcePath, err := runner.readSchemaInput(inputPath)
	if err != nil {
		return fmt.Errorf("read schema input: %w", err)
	}

	opt.RootName = rootName
	opt.SourcePath = sourcePath

	rendered, err := schemarst.Render(data, opt)
	if err != nil {
		return fmt.Errorf("render schema: %w", err)
	}

	if strings.TrimSpace(outputPath) == "" {
		if _, err := io.WriteString(runner.stdout, rendered); err != nil {
			return fmt.Errorf("write document to stdout: %w", err)
		}

		return nil
	}

	if err := os.WriteFile(outputPath, []byte(rendered), 0o600); err != nil {
		return fmt.Errorf("write document file %q: %w", outputPath, err)
	}

	return nil
}

// runWatch converts a schema folder until interrupted.
func (runner *cliRunner) runWatch(args folderArgs, conversion conversionFlags, batch batchFlags) error {
	opt, err := runner.batchOptions(conversion, batch)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := runner.paint(color.FgRed)
	return schemarst.Watch(ctx, args.Input, args.Output, opt, func(report schemarst.Report, err error) {
		if err != nil {
			_, _ = fmt.Fprintf(runner.stderr, "%s %v\n", failed.Sprint("FAILED"), err)
			return
		}

		runner.printReport(report)
	})
}

// runCheck reports stale documents and fails when any are found.
func (runner *cliRunner) runCheck(args folderArgs, conversion conversionFlags, batch batchFlags) error {
	opt, err := runner.batchOptions(conversion, batch)
	if err != nil {
		return err
	}

	drifts, err := schemarst.CheckDir(context.Background(), args.Input, args.Output, opt)
	if err != nil {
		return fmt.Errorf("check %q: %w", args.Input, err)
	}

	if len(drifts) == 0 {
		_, _ = fmt.Fprintln(runner.stdout, "All documents are up to date.")
		return nil
	}

	stale := runner.paint(color.FgYellow)
	missing := runner.paint(color.FgRed)
	for _, drift := range drifts {
		if drift.Missing {
			_, _ = fmt.Fprintf(runner.stdout, "%-40s%s\n", drift.Name, missing.Sprint("MISSING"))
			continue
		}

		_, _ = fmt.Fprintf(runner.stdout, "%-40s%s\n", drift.Name, stale.Sprint("STALE"))
		_, _ = fmt.Fprintln(runner.stdout, drift.Patch)
	}

	return fmt.Errorf("%d generated documents are out of date", len(drifts))
}

// renderOptions resolves document options from flags, environment and defaults.
func (runner *cliRunner) renderOptions(conversion conversionFlags) (schemarst.Options, error) {
	env, err := schemarst.LoadEnvConfig()
	if err != nil {
		return schemarst.Options{}, err
	}

	return conversionOptions(conversion, env), nil
}

// batchOptions resolves directory conversion options.
func (runner *cliRunner) batchOptions(conversion conversionFlags, batch batchFlags) (schemarst.BatchOptions, error) {
	env, err := schemarst.LoadEnvConfig()
	if err != nil {
		return schemarst.BatchOptions{}, err
	}

	workers := batch.Workers
	if workers <= 0 {
		workers = env.Workers
	}

	opt := schemarst.BatchOptions{
		Options: conversionOptions(conversion, env),
		Workers: workers,
	}

	if batch.Verbose {
		opt.Logger = slog.New(slog.NewTextHandler(runner.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	return opt, nil
}

// conversionOptions maps conversion flags over environment defaults.
func conversionOptions(conversion conversionFlags, env schemarst.EnvConfig) schemarst.Options {
	return schemarst.Options{
		ExcludedKeys:      resolveExcludedKeys(conversion.ExcludedKey, env.ExcludedKeys),
		IndexWrappers:     conversion.IndexWrappers,
		KeepWrapperLabels: conversion.KeepWrapperLabels,
	}
}

// resolveExcludedKeys picks excluded keys from flag, then env, then defaults.
func resolveExcludedKeys(flagValue, envValue string) []string {
	value := strings.TrimSpace(flagValue)
	if value == "" {
		value = strings.TrimSpace(envValue)
	}

	if value == "" {
		return schemarst.DefaultExcludedKeys()
	}

	if strings.EqualFold(value, excludeNothing) {
		return []string{}
	}

	return schemarst.ParseExcludedKeys(value)
}

// printReport writes one status line per converted file.
func (runner *cliRunner) printReport(report schemarst.Report) {
	ok := runner.paint(color.FgGreen)
	for _, file := range report.Files {
		_, _ = fmt.Fprintf(runner.stdout, "%-40s%s\n", file.Name, ok.Sprint("OK"))
	}

	_, _ = fmt.Fprintln(runner.stdout, "Index created.")
}

// paint returns a color printer honoring terminal detection.
func (runner *cliRunner) paint(attribute color.Attribute) *color.Color {
	printer := color.New(attribute)
	if runner.colorize {
		printer.EnableColor()
	} else {
		printer.DisableColor()
	}

	return printer
}

// readSchemaInput reads schema from file path or stdin and returns source marker.
func (runner *cliRunner) readSchemaInput(path string) ([]byte, string, error) {
	path = strings.TrimSpace(path)
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("read schema file %q: %w", path, err)
		}

		return data, path, nil
	}

	data, err := io.ReadAll(runner.stdin)
	if err != nil {
		return nil, "", fmt.Errorf("read schema from stdin: %w", err)
	}

	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, "", errors.New("read schema from stdin: empty input")
	}

	return data, "", nil
}

// isColorTerminal reports whether output is a terminal that accepts colors.
func isColorTerminal(output io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	file, ok := output.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

// writeCLIError writes a plain-text CLI error line to the selected stream.
func writeCLIError(output io.Writer, err error) {
	if err == nil {
		return
	}

	//nolint:gosec // CLI writes plain-text diagnostics to terminal streams, not HTTP responses.
	_, _ = fmt.Fprintln(output, err.Error())
}

// parseCLIArgs parses CLI arguments and triggers selected subcommand execution.
func parseCLIArgs(args []string, runner *cliRunner) error {
	options := &cliOptions{}
	options.Version.runner = runner
	options.Convert.runner = runner
	options.Render.runner = runner
	options.Watch.runner = runner
	options.Check.runner = runner

	parser := flags.NewParser(options, flags.HelpFlag)
	parser.Name = runner.programName
	applyCommandLongDescriptions(parser, runner.programName)

	_, err := parser.ParseArgs(args)
	if err != nil {
		return err
	}

	return nil
}

// applyCommandLongDescriptions configures detailed command help text with examples.
func applyCommandLongDescriptions(parser *flags.Parser, programName string) {
	descriptions := map[string]string{
		"convert": strings.TrimSpace(fmt.Sprintf(`
Convert every .json, .yml and .yaml schema below a folder to reStructuredText.
Sub-folders are mirrored, each folder gets an index.rst and the output root
gets a master index.

Examples:
> $ %s convert schemas docs/schemas
> $ %s convert --excluded-key none -j 4 schemas docs/schemas
`, programName, programName)),
		"render": strings.TrimSpace(fmt.Sprintf(`
Convert one schema to reStructuredText.
Reads schema from file argument or stdin; writes the document to file argument or stdout.

Examples:
> $ %s render schemas/person.yml > person.rst
> $ cat person.json | %s render --root-name person.json
`, programName, programName)),
		"watch": strings.TrimSpace(fmt.Sprintf(`
Convert a schema folder, then convert it again whenever a schema changes.
Stop with Ctrl+C.

Examples:
> $ %s watch schemas docs/schemas
`, programName)),
		"check": strings.TrimSpace(fmt.Sprintf(`
Render every schema in memory and compare it with the generated documents.
Exits with status 1 and prints a patch when any document is missing or stale.

Examples:
> $ %s check schemas docs/schemas
`, programName)),
	}

	for commandName, description := range descriptions {
		command := parser.Find(commandName)
		if command == nil {
			continue
		}

		command.LongDescription = description
	}
}

// printVersionInfo writes build metadata to stdout.
func (runner *cliRunner) printVersionInfo() {
	_, _ = fmt.Fprintf(runner.stdout, `url:      %s
file:     %s
version:  %s
commit:   %s
built:    %s
`, URL, os.Args[0], Version, Commit, BuildTime)
}
