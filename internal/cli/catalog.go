package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fllin1/global-franchises-sub001/internal/analysis"
	"github.com/fllin1/global-franchises-sub001/internal/store"
)

// CatalogOptions holds flags for the catalog command family.
type CatalogOptions struct {
	*RootOptions
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the franchise catalog",
		Long: `Manage the catalog of franchise options available for comparison.

Example:
  franchises catalog add f-aroma "Aroma Coffee" --attr investment=120k-180k --attr royalty=6%
  franchises catalog import franchises.yaml
  franchises catalog list`,
	}

	cmd.AddCommand(newCatalogAdd(opts))
	cmd.AddCommand(newCatalogShow(opts))
	cmd.AddCommand(newCatalogList(opts))
	cmd.AddCommand(newCatalogImport(opts))

	return cmd
}

// franchiseView is the output payload for a single catalog record.
type franchiseView struct {
	analysis.Franchise
}

func (v franchiseView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s", v.ID, v.Name)
	for _, attr := range sortedAttrKeys(v.Attrs) {
		fmt.Fprintf(&b, "\n  %s: %s", attr, v.Attrs[attr])
	}
	return b.String()
}

// catalogView is the output payload for catalog list.
type catalogView struct {
	Franchises []analysis.Franchise `json:"franchises"`
	Count      int                  `json:"count"`
}

func (v catalogView) String() string {
	if v.Count == 0 {
		return "catalog is empty"
	}
	lines := make([]string, 0, v.Count+1)
	for _, f := range v.Franchises {
		lines = append(lines, fmt.Sprintf("%s\t%s", f.ID, f.Name))
	}
	lines = append(lines, fmt.Sprintf("%d franchises", v.Count))
	return strings.Join(lines, "\n")
}

func newCatalogAdd(opts *CatalogOptions) *cobra.Command {
	var attrs []string

	cmd := &cobra.Command{
		Use:           "add <id> <name>",
		Short:         "Add or update a franchise",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := analysis.Franchise{ID: args[0], Name: args[1]}
			if len(attrs) > 0 {
				f.Attrs = make(map[string]string, len(attrs))
				for _, a := range attrs {
					k, v, ok := strings.Cut(a, "=")
					if !ok || k == "" {
						return NewExitError(ExitCommandError, fmt.Sprintf("invalid --attr %q: expected key=value", a))
					}
					f.Attrs[k] = v
				}
			}

			return withStore(opts.RootOptions, func(ctx context.Context, st *store.Store) error {
				if err := st.UpsertFranchise(ctx, f); err != nil {
					return WrapExitError(ExitCommandError, "saving franchise", err)
				}
				return formatter(opts.RootOptions, cmd).Success(franchiseView{f})
			}, cmd)
		},
	}

	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "comparable attribute as key=value (repeatable)")

	return cmd
}

func newCatalogShow(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <id>",
		Short:         "Print one catalog record",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts.RootOptions, func(ctx context.Context, st *store.Store) error {
				f, err := st.ReadFranchise(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "reading franchise", err)
				}
				if f == nil {
					return NewExitError(ExitFailure, fmt.Sprintf("franchise %q not found", args[0]))
				}
				return formatter(opts.RootOptions, cmd).Success(franchiseView{*f})
			}, cmd)
		},
	}
}

func newCatalogList(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List all catalog records",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts.RootOptions, func(ctx context.Context, st *store.Store) error {
				fs, err := st.ListFranchises(ctx)
				if err != nil {
					return WrapExitError(ExitCommandError, "listing franchises", err)
				}
				return formatter(opts.RootOptions, cmd).Success(catalogView{Franchises: fs, Count: len(fs)})
			}, cmd)
		},
	}
}

func newCatalogImport(opts *CatalogOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "import <file>",
		Short:         "Import franchises from a YAML file",
		Long:          "Import catalog records from a YAML file holding a list of franchises.\nExisting records with the same id are overwritten.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "reading import file", err)
			}

			var franchises []analysis.Franchise
			if err := yaml.Unmarshal(data, &franchises); err != nil {
				return WrapExitError(ExitCommandError, "parsing import file", err)
			}
			for i, f := range franchises {
				if f.ID == "" || f.Name == "" {
					return NewExitError(ExitCommandError, fmt.Sprintf("entry %d: id and name are required", i))
				}
			}

			return withStore(opts.RootOptions, func(ctx context.Context, st *store.Store) error {
				for _, f := range franchises {
					if err := st.UpsertFranchise(ctx, f); err != nil {
						return WrapExitError(ExitCommandError, fmt.Sprintf("importing %s", f.ID), err)
					}
				}
				return formatter(opts.RootOptions, cmd).Success(fmt.Sprintf("imported %d franchises", len(franchises)))
			}, cmd)
		},
	}
}

func sortedAttrKeys(attrs map[string]string) []string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
