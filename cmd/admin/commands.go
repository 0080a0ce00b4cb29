package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"go-socialnet/internal/core/auth"
	"go-socialnet/internal/core/database"
)

// errFailed makes the process exit non-zero; the reason was already printed
// or logged.
var errFailed = errors.New("operation failed")

// newRootCmd returns the command tree and a func releasing whatever the run
// opened. Cobra skips post-run hooks when a command fails, so callers close
// explicitly.
func newRootCmd() (*cobra.Command, func()) {
	var (
		cfgPath string
		a       *app
	)
	root := &cobra.Command{
		Use:           "admin",
		Short:         "Manage users and status updates",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			a, err = openApp(cfgPath, cmd.OutOrStdout())
			return err
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	get := func() *app { return a }
	root.AddCommand(
		newMigrateCmd(get),
		newLoadCmd(get, "load-users", "Load users from a USER_ID,EMAIL,NAME,LASTNAME csv file", false),
		newLoadCmd(get, "load-status", "Load status updates from a STATUS_ID,USER_ID,STATUS_TEXT csv file", true),
		newTokenCmd(get),
	)
	root.AddCommand(newUserCmds(get)...)
	root.AddCommand(newStatusCmds(get)...)
	closeApp := func() {
		if a != nil {
			a.cleanup()
			a = nil
		}
	}
	return root, closeApp
}

func newMigrateCmd(get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the users and status tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := database.Migrate(get().db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func newLoadCmd(get func() *app, use, short string, statuses bool) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   use + " FILE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			rep := a.loader.ImportUsersFile
			if statuses {
				rep = a.loader.ImportStatusUpdatesFile
			}
			r := rep(cmd.Context(), args[0])
			if asJSON {
				if err := printJSON(cmd, r); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "rows=%d inserted=%d failed=%d\n", r.Rows, r.Inserted, r.Failed)
			}
			if !r.OK() {
				return errFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the load report as JSON")
	return cmd
}

// boolCmd wraps an operation whose only outcome is success or failure.
func boolCmd(use, short string, nargs int, run func(cmd *cobra.Command, a *app, args []string) bool, get func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !run(cmd, get(), args) {
				fmt.Fprintln(cmd.OutOrStdout(), "false")
				return errFailed
			}
			fmt.Fprintln(cmd.OutOrStdout(), "true")
			return nil
		},
	}
}

func newUserCmds(get func() *app) []*cobra.Command {
	return []*cobra.Command{
		boolCmd("add-user USER_ID EMAIL NAME LASTNAME", "Add a user", 4,
			func(cmd *cobra.Command, a *app, args []string) bool {
				return a.svc.AddUser(cmd.Context(), args[0], args[1], args[2], args[3])
			}, get),
		boolCmd("update-user USER_ID EMAIL NAME LASTNAME", "Replace a user's email and names", 4,
			func(cmd *cobra.Command, a *app, args []string) bool {
				return a.svc.UpdateUser(cmd.Context(), args[0], args[1], args[2], args[3])
			}, get),
		boolCmd("delete-user USER_ID", "Delete a user and all of their status updates", 1,
			func(cmd *cobra.Command, a *app, args []string) bool {
				return a.svc.DeleteUser(cmd.Context(), args[0])
			}, get),
		{
			Use:   "search-user USER_ID",
			Short: "Print a user as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				u := get().svc.SearchUser(cmd.Context(), args[0])
				if u == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "null")
					return errFailed
				}
				return printJSON(cmd, u)
			},
		},
	}
}

func newStatusCmds(get func() *app) []*cobra.Command {
	return []*cobra.Command{
		boolCmd("add-status STATUS_ID USER_ID TEXT", "Add a status update for an existing user", 3,
			func(cmd *cobra.Command, a *app, args []string) bool {
				return a.svc.AddStatus(cmd.Context(), args[0], args[1], args[2])
			}, get),
		boolCmd("update-status STATUS_ID USER_ID TEXT", "Replace the text of a status update", 3,
			func(cmd *cobra.Command, a *app, args []string) bool {
				return a.svc.UpdateStatus(cmd.Context(), args[0], args[1], args[2])
			}, get),
		boolCmd("delete-status STATUS_ID", "Delete a status update", 1,
			func(cmd *cobra.Command, a *app, args []string) bool {
				return a.svc.DeleteStatus(cmd.Context(), args[0])
			}, get),
		{
			Use:   "search-status STATUS_ID",
			Short: "Print a status update as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				st := get().svc.SearchStatus(cmd.Context(), args[0])
				if st == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "null")
					return errFailed
				}
				return printJSON(cmd, st)
			},
		},
	}
}

func newTokenCmd(get func() *app) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "token SUBJECT",
		Short: "Mint a bearer token for the HTTP API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tok, err := get().jwter().Issue(args[0], role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", auth.RoleAdmin, "role claim")
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
