// Package cmd provides command-line interface commands for the Enterprise
// Search plugin service.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"entsearch/bootstrap"
	"entsearch/config"
	"entsearch/configdata"
	"entsearch/core"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	warningColor = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	headerColor  = color.New(color.FgBlue, color.Bold)
)

const defaultTimeout = 30 * time.Second

// ErrNoHost is returned when there is no Enterprise Search host to query.
var ErrNoHost = errors.New("enterprise_search.host is not configured")

type configDataOptions struct {
	configFile    string
	authorization string
	outputJSON    bool
	outputYAML    bool
	noColor       bool
	quiet         bool
	timeout       time.Duration
}

// NewConfigDataCmd creates the config-data command. It fetches the initial
// application data once and prints what the applications would see.
func NewConfigDataCmd() *cobra.Command {
	opts := &configDataOptions{}

	cmd := &cobra.Command{
		Use:   "config-data",
		Short: "Fetch the Enterprise Search config data",
		Long: `Fetch the initial application data from the configured Enterprise Search
host, exactly once, and print the merged result.

Unlike the applications themselves, which fall back to an error screen,
this command reports why the request failed and exits non-zero.`,
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.outputJSON && opts.outputYAML {
				return errors.New("--json and --yaml are mutually exclusive")
			}
			if opts.noColor {
				color.NoColor = true
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			return runConfigData(ctx, cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.configFile, "config", "", "Config file path (default: search . and ./config)")
	cmd.Flags().StringVar(&opts.authorization, "authorization", "", "Authorization header sent with the request")
	cmd.Flags().BoolVar(&opts.outputJSON, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.outputYAML, "yaml", false, "Output in YAML format")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&opts.quiet, "quiet", false, "Suppress non-essential output")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "Overall timeout for the request")

	return cmd
}

func runConfigData(ctx context.Context, out io.Writer, opts *configDataOptions) error {
	cfg, err := config.LoadConfigFile(opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cfg.HasHost() {
		return ErrNoHost
	}

	backend := cfg.GetBackendURL()
	client := configdata.NewClient(backend, cfg.EnterpriseSearch.RequestTimeout).WithAuthorization(opts.authorization)
	defer client.Close()

	structured := opts.outputJSON || opts.outputYAML
	if !structured && !opts.quiet {
		infoColor.Fprintf(out, "Fetching config data from %s\n", backend)
	}

	var s *spinner.Spinner
	if !structured && !opts.quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
		s.Suffix = " Contacting Enterprise Search..."
		s.Start()
	}

	result := configdata.Fetch(ctx, client)

	if s != nil {
		s.Stop()
	}

	if !result.OK() {
		return fmt.Errorf("%w\n%s", result.Err,
			bootstrap.ClassifyConnectionError(result.Err, bootstrap.ServiceEnterpriseSearch, backend))
	}

	data := core.NewApplicationData(cfg.EnterpriseSearch.Host)
	data.Merge(result.Fields)
	if result.PublicURL != "" {
		data.ReplaceExternalURL(core.NewExternalURL(result.PublicURL))
	}

	switch {
	case opts.outputJSON:
		return outputAsJSON(out, data.Snapshot())
	case opts.outputYAML:
		return outputAsYAML(out, data.Snapshot().Map())
	}

	renderConfigData(out, cfg.EnterpriseSearch.Host, data)
	if !opts.quiet {
		successColor.Fprintln(out, "✓ Config data loaded")
	}
	return nil
}

// outputAsJSON writes v as indented JSON
func outputAsJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputAsYAML writes v as YAML
func outputAsYAML(out io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// renderConfigData displays the application data as a table
func renderConfigData(out io.Writer, host string, data *core.ApplicationData) {
	external := data.ExternalURL()

	headerColor.Fprintln(out, "ENTERPRISE SEARCH CONFIG DATA")
	headerColor.Fprintln(out, "=============================")
	printField(out, "Host", host)
	printField(out, "External URL", external.EnterpriseSearchURL())
	printField(out, "App Search URL", external.AppSearchURL(""))
	printField(out, "Workplace Search URL", external.WorkplaceSearchURL(""))
	printField(out, "Read-only mode", formatBool(data.ReadOnlyMode()))
	printField(out, "ILM enabled", formatBool(data.ILMEnabled()))
	printField(out, "Federated auth", formatBool(data.IsFederatedAuth()))
	fmt.Fprintln(out)

	fields := data.Fields()
	if len(fields) == 0 {
		warningColor.Fprintln(out, "  No fields returned")
		return
	}

	headerColor.Fprintln(out, "  Fields")
	headerColor.Fprintln(out, "  ------")
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printField(out, k, formatValue(fields[k]))
	}
}

// printField prints a key-value field
func printField(out io.Writer, key, value string) {
	if value == "" {
		value = "(not set)"
	}
	fmt.Fprintf(out, "  %-25s %s\n", key+":", value)
}

// formatBool returns a colored yes/no
func formatBool(b bool) string {
	if b {
		return color.New(color.FgGreen).Sprint("Yes")
	}
	return color.New(color.FgRed).Sprint("No")
}

// formatValue renders nested values compactly
func formatValue(v interface{}) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(b)
	default:
		return fmt.Sprint(v)
	}
}
