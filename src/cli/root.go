// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/H0llyW00dzZ/x509-der-inspector/src/config"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/internal/helper/posix"
	x509bundle "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/bundle"
	x509certs "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/certs"
	x509der "github.com/H0llyW00dzZ/x509-der-inspector/src/internal/x509/der"
	"github.com/H0llyW00dzZ/x509-der-inspector/src/logger"
)

var (
	// OperationPerformed is set once a command has started processing input.
	OperationPerformed bool
	// OperationPerformedSuccessfully is set once a command has written its output.
	OperationPerformedSuccessfully bool
)

var (
	// ErrUnsupportedFormat indicates an --format value the inspector cannot render.
	ErrUnsupportedFormat = errors.New("cli: unsupported output format")

	// ErrNoCertificates indicates that the input held no certificate at all.
	ErrNoCertificates = errors.New("cli: no certificates found in input")
)

// options holds the flag values of one command invocation.
type options struct {
	configPath string
	outputFile string
	format     string
	maxDepth   int
	maxLength  int
	warnDays   int
	logJSON    bool
	quiet      bool
}

// clock is swapped by tests to pin validity status.
var clock = time.Now

// Execute runs the root command with os.Args and returns the first error.
//
// Parameters:
//   - ctx: cancelled on SIGINT/SIGTERM; commands stop before writing output
//   - version: reported by --version
//   - log: destination for progress messages
func Execute(ctx context.Context, version string, log logger.Logger) error {
	return newRootCommand(version, log).ExecuteContext(ctx)
}

// newRootCommand builds the command tree. Each call gets its own flag state.
func newRootCommand(version string, log logger.Logger) *cobra.Command {
	opts := &options{}
	exeName := posix.GetExecutableName()

	rootCmd := &cobra.Command{
		Use:   exeName + " [FILE]",
		Short: "Inspect X.509 certificates at the DER level",
		Long: `Decode X.509 certificates from PEM, raw DER or PKCS#7 input and print
their structure. Reads standard input when FILE is omitted or "-".`,
		Example: fmt.Sprintf(`  %[1]s cert.pem
  %[1]s --format tree chain.pem
  %[1]s --format json -o report.json bundle.p7b
  %[1]s dump cert.der
  %[1]s oid 2.5.4.3 2.5.29.17`, exeName),
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			switch {
			case opts.quiet:
				log.SetOutput(io.Discard)
			case opts.logJSON:
				log = logger.NewJSONLogger(cmd.ErrOrStderr(), false)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, opts, log)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "", "configuration file, JSON or YAML (env "+config.EnvConfigFile+")")
	pf.StringVarP(&opts.outputFile, "output", "o", "", "write output to OUTPUT_FILE (default: stdout)")
	pf.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth while decoding (default from config: 32)")
	pf.IntVar(&opts.maxLength, "max-length", 0, "maximum bytes decoded per certificate (default from config: 16 MiB)")
	pf.BoolVar(&opts.logJSON, "log-json", false, "write progress messages as JSON lines to stderr")
	pf.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress progress messages")

	f := rootCmd.Flags()
	f.StringVarP(&opts.format, "format", "f", "", "output format: text, tree, table, json, yaml, pem or der")
	f.IntVar(&opts.warnDays, "warn-days", 0, "flag certificates expiring within this many days (default from config: 30)")

	rootCmd.AddCommand(newDumpCommand(opts, func() logger.Logger { return log }))
	rootCmd.AddCommand(newOIDCommand(opts, func() logger.Logger { return log }))

	return rootCmd
}

// settings merges the configuration file with any flags given explicitly.
func (o *options) settings(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("max-depth") {
		cfg.Decoder.MaxDepth = o.maxDepth
	}
	if flags.Changed("max-length") {
		cfg.Decoder.MaxTotalLength = o.maxLength
	}
	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}
	if flags.Changed("warn-days") {
		cfg.Output.WarnDays = o.warnDays
	}
	return cfg, nil
}

// readInput reads FILE, or standard input for no argument or "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("error reading standard input: %w", err)
		}
		return data, "standard input", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("error reading input file: %w", err)
	}
	return data, args[0], nil
}

// writeOutput writes data to --output or to the command's stdout.
func writeOutput(cmd *cobra.Command, opts *options, data []byte) error {
	if opts.outputFile != "" {
		if err := os.WriteFile(opts.outputFile, data, 0644); err != nil {
			return fmt.Errorf("error writing to output file: %w", err)
		}
		return nil
	}
	_, err := cmd.OutOrStdout().Write(data)
	return err
}

// runInspect decodes every certificate in the input and renders the bundle.
func runInspect(cmd *cobra.Command, args []string, opts *options, log logger.Logger) error {
	cfg, err := opts.settings(cmd)
	if err != nil {
		return err
	}

	data, source, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	OperationPerformed = true

	decoder := x509certs.NewWithDecoder(x509der.NewDecoder(cfg.Decoder))
	certs, err := decoder.DecodeMultiple(data)
	if err != nil {
		return fmt.Errorf("error decoding certificates from %s: %w", source, err)
	}
	if len(certs) == 0 {
		return ErrNoCertificates
	}
	log.Printf("Decoded %d certificate(s) from %s", len(certs), source)

	if err := cmd.Context().Err(); err != nil {
		return err
	}

	bundle := x509bundle.New(certs,
		x509bundle.WithClock(clock),
		x509bundle.WithWarnDays(cfg.Output.WarnDays),
	)
	out, err := render(bundle, decoder, cfg.Output.Format)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, opts, out); err != nil {
		return err
	}
	if opts.outputFile != "" {
		log.Printf("Wrote %s output for %d certificate(s) to %s", cfg.Output.Format, bundle.Len(), opts.outputFile)
	}

	OperationPerformedSuccessfully = true
	return nil
}

// render produces the bytes of one output format.
func render(b *x509bundle.Bundle, enc *x509certs.Certificate, format string) ([]byte, error) {
	switch format {
	case "text":
		return []byte(b.RenderText()), nil
	case "tree":
		return []byte(b.RenderASCIITree()), nil
	case "table":
		return []byte(b.RenderTable()), nil
	case "json":
		out, err := b.ToJSON()
		if err != nil {
			return nil, fmt.Errorf("error marshaling JSON: %w", err)
		}
		return append(out, '\n'), nil
	case "yaml":
		out, err := b.ToYAML()
		if err != nil {
			return nil, fmt.Errorf("error marshaling YAML: %w", err)
		}
		return out, nil
	case "pem":
		return enc.EncodeMultiplePEM(b.Certs), nil
	case "der":
		return enc.EncodeMultipleDER(b.Certs), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
