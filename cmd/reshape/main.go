// Command reshape applies a file-defined mapping entity to a JSON record and
// prints the transformed result with deterministic key order.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	reshape "github.com/mlens/reshape"
	"github.com/mlens/reshape/codec"
	"github.com/mlens/reshape/specfile"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reshape:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "reshape",
		Short:         "declarative object transformation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		specPath  string
		entity    string
		inputPath string
		optPairs  []string
		debug     bool
		verbose   bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "transform a JSON record through an entity definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)

			entities, err := loadSpec(specPath)
			if err != nil {
				return err
			}
			e, ok := entities[entity]
			if !ok {
				return fmt.Errorf("entity %q not found in %s", entity, specPath)
			}
			if debug {
				spew.Fdump(os.Stderr, e)
			}

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return err
			}
			var input any
			if err := json.Unmarshal(data, &input); err != nil {
				return fmt.Errorf("decode %s: %w", inputPath, err)
			}

			opts, err := parseOptPairs(optPairs)
			if err != nil {
				return err
			}

			reg := reshape.DefaultRegistry()
			codec.Register(reg)

			out, err := e.Parse(input,
				reshape.WithOptions(opts),
				reshape.WithRegistry(reg),
				reshape.WithLogger(logger),
			)
			if err != nil {
				return err
			}
			rendered, err := reshape.MarshalOrdered(out)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(rendered))
			return nil
		},
	}
	cmd.Flags().StringVarP(&specPath, "spec", "s", "", "entity specification file (YAML or JSON)")
	cmd.Flags().StringVarP(&entity, "entity", "e", "", "entity name within the specification")
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "JSON input record")
	cmd.Flags().StringArrayVarP(&optPairs, "opt", "o", nil, "parse option as key=value (repeatable)")
	cmd.Flags().BoolVar(&debug, "debug", false, "dump the resolved entity to stderr")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log contained per-field errors")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadSpec(p string) (map[string]*reshape.Entity, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	switch filepath.Ext(p) {
	case ".json":
		return specfile.DecodeJSON(data)
	default:
		return specfile.DecodeYAML(data)
	}
}

func parseOptPairs(pairs []string) (reshape.Options, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	opts := make(reshape.Options, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --opt %q, want key=value", p)
		}
		opts[k] = v
	}
	return opts, nil
}
