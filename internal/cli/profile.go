package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fllin1/global-franchises-sub001/internal/analysis"
	"github.com/fllin1/global-franchises-sub001/internal/store"
)

// NewProfileCommand creates the profile command and its subcommands.
// A lead's profile personalizes generated comparisons: priority attributes
// surface first and the headline addresses the lead by name.
func NewProfileCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage lead profiles",
	}

	cmd.AddCommand(newProfileSet(rootOpts))
	cmd.AddCommand(newProfileShow(rootOpts))

	return cmd
}

// profileView is the output payload for profile commands.
type profileView struct {
	analysis.Profile
}

func (v profileView) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\t%s", v.LeadID, v.Name)
	if v.Budget != "" {
		fmt.Fprintf(&b, "\n  budget: %s", v.Budget)
	}
	if len(v.Priorities) > 0 {
		fmt.Fprintf(&b, "\n  priorities: %s", strings.Join(v.Priorities, ", "))
	}
	return b.String()
}

func newProfileSet(opts *RootOptions) *cobra.Command {
	var (
		name       string
		budget     string
		priorities []string
	)

	cmd := &cobra.Command{
		Use:           "set <lead>",
		Short:         "Create or update a lead profile",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return NewExitError(ExitCommandError, "--name is required")
			}
			p := analysis.Profile{
				LeadID:     args[0],
				Name:       name,
				Budget:     budget,
				Priorities: priorities,
			}
			return withStore(opts, func(ctx context.Context, st *store.Store) error {
				if err := st.UpsertProfile(ctx, p); err != nil {
					return WrapExitError(ExitCommandError, "saving profile", err)
				}
				return formatter(opts, cmd).Success(profileView{p})
			}, cmd)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "lead display name (required)")
	cmd.Flags().StringVar(&budget, "budget", "", "investment budget")
	cmd.Flags().StringArrayVar(&priorities, "priority", nil, "priority attribute, most important first (repeatable)")

	return cmd
}

func newProfileShow(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show <lead>",
		Short:         "Print a lead profile",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(opts, func(ctx context.Context, st *store.Store) error {
				p, err := st.ReadProfile(ctx, args[0])
				if err != nil {
					return WrapExitError(ExitCommandError, "reading profile", err)
				}
				if p == nil {
					return NewExitError(ExitFailure, fmt.Sprintf("no profile for lead %q", args[0]))
				}
				return formatter(opts, cmd).Success(profileView{*p})
			}, cmd)
		},
	}
}
