package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"restaurant/entity"
	"restaurant/services"

	"github.com/spf13/cobra"
)

type openFunc func() (*services.UserService, error)

func newRootCmd(open openFunc) *cobra.Command {
	root := &cobra.Command{
		Use:          "staffctl",
		Short:        "Manage restaurant staff accounts",
		SilenceUsage: true,
	}
	root.AddCommand(
		newCreateCmd(open),
		newPasswdCmd(open),
		newListCmd(open),
		newDeleteCmd(open),
	)
	return root
}

func newCreateCmd(open openFunc) *cobra.Command {
	var email, password, role string
	cmd := &cobra.Command{
		Use:   "create USERNAME",
		Short: "Create a user (admin by default)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := open()
			if err != nil {
				return err
			}
			if password == "" {
				if password, err = readPassword(cmd); err != nil {
					return err
				}
			}
			u, err := users.Create(services.UserInput{
				Username: args[0],
				Email:    email,
				Password: password,
				Role:     role,
			})
			var verr *services.ValidationError
			if errors.As(err, &verr) {
				if _, taken := verr.Fields["username"]; taken {
					return fmt.Errorf("%w (use `staffctl passwd %s` to reset it)", err, args[0])
				}
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d, role %s)\n", u.Username, u.ID, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email address (required)")
	cmd.Flags().StringVar(&password, "password", "", "password; read from stdin when empty")
	cmd.Flags().StringVar(&role, "role", entity.RoleAdmin, "one of "+strings.Join(entity.Roles, ", "))
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newPasswdCmd(open openFunc) *cobra.Command {
	var password, role string
	cmd := &cobra.Command{
		Use:   "passwd USERNAME",
		Short: "Reset a user's password and role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := open()
			if err != nil {
				return err
			}
			u, err := users.FindByUsername(args[0])
			if err != nil {
				return err
			}
			if role == "" {
				role = u.Role
			}
			if password == "" {
				if password, err = readPassword(cmd); err != nil {
					return err
				}
			}
			if err := users.SetPassword(u.ID, password, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated user %q (role %s)\n", u.Username, role)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password; read from stdin when empty")
	cmd.Flags().StringVar(&role, "role", "", "new role; unchanged when empty")
	return cmd
}

func newListCmd(open openFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := open()
			if err != nil {
				return err
			}
			list, err := users.List()
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no users")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tEMAIL\tROLE\tCREATED")
			for _, u := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Email, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func newDeleteCmd(open openFunc) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete USERNAME",
		Short: "Delete a user that has not served any orders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := open()
			if err != nil {
				return err
			}
			u, err := users.FindByUsername(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(cmd, fmt.Sprintf("delete user %q? [y/N] ", u.Username))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}
			if err := users.Delete(u.ID); err != nil {
				if errors.Is(err, services.ErrInUse) {
					return fmt.Errorf("user %q has served orders and cannot be deleted", u.Username)
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %q\n", u.Username)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), "password: ")
	line, err := readLine(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return line, nil
}

func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	line, err := readLine(cmd.InOrStdin())
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
