package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fllin1/global-franchises-sub001/internal/analysis"
	"github.com/fllin1/global-franchises-sub001/internal/store"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	IDs  string
	Lead string
	Save bool
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Generate or reuse a comparison document",
		Long: `Generate a side-by-side comparison document for a set of franchises.

With --lead, a previously cached analysis is reused when it covers the
requested id-set (order and duplicates don't matter); otherwise a fresh
document is generated. Without --ids the current selection for the scope
is compared.

Example:
  franchises compare --ids f-aroma,f-bloom
  franchises compare --lead L42 --save
  franchises compare --lead L42 --ids f-crisp,f-aroma --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.IDs, "ids", "", "comma-separated franchise ids (defaults to the current selection)")
	cmd.Flags().StringVar(&opts.Lead, "lead", "", "lead id (enables the cached analysis and profile)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "cache the resulting document for the lead (requires --lead)")

	return cmd
}

// compareView is the output payload for the compare command.
type compareView struct {
	Source   analysis.Source   `json:"source"`
	Key      string            `json:"key"`
	Document analysis.Document `json:"document"`
}

func (v compareView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s]\n\n", v.Document.Headline, v.Source)

	w := tabwriter.NewWriter(&b, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "attribute\t%s\n", strings.Join(v.Document.Names, "\t"))
	for _, row := range v.Document.Rows {
		cells := make([]string, len(v.Document.Franchises))
		for i, id := range v.Document.Franchises {
			cells[i] = row.Values[id]
		}
		fmt.Fprintf(w, "%s\t%s\n", row.Attribute, strings.Join(cells, "\t"))
	}
	w.Flush()
	return strings.TrimRight(b.String(), "\n")
}

func runCompare(opts *CompareOptions, cmd *cobra.Command) error {
	if opts.Save && opts.Lead == "" {
		return NewExitError(ExitCommandError, "--save requires --lead")
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	requested := analysis.ParseIDList(opts.IDs)
	if requested == nil {
		// Fall back to the scope's persisted selection. An empty selection
		// stays nil: with a lead that means "show the cached analysis", and
		// the reconciler rejects the rest.
		requested, err = currentSelection(ctx, opts, st)
		if err != nil {
			return err
		}
	}

	rec := analysis.NewReconciler(st, st, analysis.NewTableGenerator(st, nil, nil))
	result, err := rec.Reconcile(ctx, analysis.Request{
		RequestedIDs: requested,
		LeadID:       opts.Lead,
	})
	if err != nil {
		if analysis.IsValidation(err) {
			return WrapExitError(ExitFailure, "nothing to compare", err)
		}
		if analysis.IsGeneration(err) {
			return WrapExitError(ExitFailure, "generating comparison", err)
		}
		return WrapExitError(ExitCommandError, "comparing", err)
	}

	if opts.Save && result.Source == analysis.SourceGenerated {
		cached := analysis.CachedAnalysis{
			LeadID:      opts.Lead,
			IDSet:       result.Document.Franchises,
			Document:    result.Document,
			GeneratedAt: result.Document.GeneratedAt,
		}
		if err := st.WriteAnalysis(ctx, cached); err != nil {
			return WrapExitError(ExitCommandError, "caching analysis", err)
		}
	}

	return formatter(opts.RootOptions, cmd).Success(compareView{
		Source:   result.Source,
		Key:      result.Key,
		Document: result.Document,
	})
}

// currentSelection loads the persisted selection for the command's scope.
// Returns nil when nothing is selected.
func currentSelection(ctx context.Context, opts *CompareOptions, st *store.Store) ([]string, error) {
	var ids []string
	var err error
	if opts.Lead != "" {
		ids, err = st.LoadSelection(ctx, opts.Lead)
	} else {
		ids, err = loadAnonymousSelection(ctx, opts.RootOptions)
	}
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading selection", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return ids, nil
}
