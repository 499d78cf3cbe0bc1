package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/translate/ptlsearch/internal/config"
	"github.com/translate/ptlsearch/internal/domain/search/environment"
	"github.com/translate/ptlsearch/internal/domain/search/query"
	"github.com/translate/ptlsearch/internal/version"
)

type options struct {
	configPath string
	env        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:          "ptlquery",
		Short:        "Parse search text into a scoped search query",
		Version:      version.String(),
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file with search environments")
	root.PersistentFlags().StringVarP(&opts.env, "env", "e", environment.Default, "search environment")

	root.AddCommand(newParseCmd(opts), newFieldsCmd(opts))
	return root
}

func newParseCmd(opts *options) *cobra.Command {
	var (
		checked []string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Print the encoded search query for the given text",
		Long: `Parses search text for "in:<field>" directives.
Without directives, the fields given with --checked are used as-is.
The output is the value a client appends to its search URL.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := loadTable(opts.configPath)
			if err != nil {
				return err
			}

			p := query.NewParser(opts.env, table)
			q := p.Parse(strings.Join(args, " "), checked)

			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), q.Encode())
				return nil
			}

			fields := q.Fields()
			if fields == nil {
				fields = []string{}
			}
			data, err := json.MarshalIndent(map[string]any{
				"environment": p.Environment(),
				"text":        q.Text(),
				"fields":      fields,
				"dropped":     q.Dropped(),
				"scope":       q.Scope(),
				"encoded":     q.Encode(),
			}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal query: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&checked, "checked", "c", nil, "fields to search when the text has no directives")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output the parsed query as JSON")
	return cmd
}

func newFieldsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "fields",
		Short: "List the fields directives may name in the environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := loadTable(opts.configPath)
			if err != nil {
				return err
			}
			name, set := table.Resolve(opts.env)
			if name != opts.env {
				cmd.PrintErrf("unknown environment %q, using %q\n", opts.env, name)
			}
			for _, f := range set.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

// loadTable returns the built-in environments, or those of the config file when one is given.
func loadTable(path string) (environment.Table, error) {
	if path == "" {
		return environment.DefaultTable(), nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return environment.Table{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := config.Parse(data)
	if err != nil {
		return environment.Table{}, err
	}
	return cfg.Search.Table()
}
