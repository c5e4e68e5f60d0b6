package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fllin1/global-franchises-sub001/internal/engine"
)

// SelectOptions holds flags for the select command family.
type SelectOptions struct {
	*RootOptions
	Lead string
}

// selectionView is the JSON payload for selection output.
type selectionView struct {
	Scope   string   `json:"scope"`
	IDs     []string `json:"ids"`
	Size    int      `json:"size"`
	MaxSize int      `json:"max_size"`
}

func (v selectionView) String() string {
	ids := "(empty)"
	if len(v.IDs) > 0 {
		ids = strings.Join(v.IDs, ", ")
	}
	return fmt.Sprintf("%s: %d/%d selected: %s", v.Scope, v.Size, v.MaxSize, ids)
}

// NewSelectCommand creates the select command and its subcommands.
func NewSelectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SelectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Manage the comparison selection",
		Long: `Manage the set of franchises queued for comparison.

Without --lead the anonymous selection is used; it lives in a local file
and survives restarts. With --lead the selection belongs to that lead and
is stored in the database.

Example:
  franchises select add f-aroma f-bloom
  franchises select --lead L42 toggle f-crisp
  franchises select --lead L42 show`,
	}

	cmd.PersistentFlags().StringVar(&opts.Lead, "lead", "", "lead id (empty for the anonymous selection)")

	cmd.AddCommand(newSelectMutation(opts, "add <id>...", "Add franchises to the selection",
		func(c *engine.Coordinator, ids []string) {
			for _, id := range ids {
				c.Add(id)
			}
		}))
	cmd.AddCommand(newSelectMutation(opts, "remove <id>...", "Remove franchises from the selection",
		func(c *engine.Coordinator, ids []string) {
			for _, id := range ids {
				c.Remove(id)
			}
		}))
	cmd.AddCommand(newSelectMutation(opts, "toggle <id>...", "Toggle franchises in the selection",
		func(c *engine.Coordinator, ids []string) {
			for _, id := range ids {
				c.Toggle(id)
			}
		}))
	cmd.AddCommand(newSelectClear(opts))
	cmd.AddCommand(newSelectShow(opts))

	return cmd
}

// newSelectMutation builds an id-taking mutation subcommand.
func newSelectMutation(opts *SelectOptions, use, short string, apply func(*engine.Coordinator, []string)) *cobra.Command {
	return &cobra.Command{
		Use:           use,
		Short:         short,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSelection(opts, cmd, func(c *engine.Coordinator) {
				apply(c, args)
			})
		},
	}
}

func newSelectClear(opts *SelectOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "clear",
		Short:         "Empty the selection",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSelection(opts, cmd, func(c *engine.Coordinator) {
				c.Clear()
			})
		},
	}
}

func newSelectShow(opts *SelectOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the current selection",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSelection(opts, cmd, func(c *engine.Coordinator) {})
		},
	}
}

// withSelection runs body against the scoped selection and prints the
// resulting state. The coordinator is flushed and closed before returning:
// a short-lived process must not lose its last mutations to the debounce
// window.
func withSelection(opts *SelectOptions, cmd *cobra.Command, body func(*engine.Coordinator)) error {
	st, err := openStore(opts.RootOptions)
	if err != nil {
		return err
	}
	defer st.Close()

	coord := newCoordinator(opts.RootOptions, st)
	defer coord.Close()

	scope := scopeFor(opts.Lead)
	coord.SetScope(scope)
	coord.Quiesce()

	body(coord)
	coord.Flush()

	view := selectionView{
		Scope:   scope.Key(),
		IDs:     coord.IDs(),
		Size:    coord.Size(),
		MaxSize: opts.cfg.Selection.MaxSize,
	}
	return formatter(opts.RootOptions, cmd).Success(view)
}
