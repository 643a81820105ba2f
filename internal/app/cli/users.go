package cli

import (
	"fmt"

	"marketadmin/internal/app/dashboard"
	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"

	"github.com/spf13/cobra"
)

func (a *app) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(a.usersListCmd(), a.usersGetCmd(), a.usersUpdateCmd(), a.usersPasswdCmd(), a.usersDeleteCmd())
	return cmd
}

func (a *app) usersListCmd() *cobra.Command {
	var page int
	var search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			p := dashboard.NewPager(page)
			res, err := c.GetUsers(cmd.Context(), p.Limit(), p.Offset())
			if err != nil {
				return err
			}

			users := dashboard.FilterUsers(res.Data, search)
			t := newTable(a.out, "ID", "NAME", "EMAIL", "ROLE", "ACTIVE", "VERIFIED", "CREATED")
			for _, u := range users {
				t.row(u.ID, u.Name, u.Email, string(u.Role), yesNo(u.IsActive), yesNo(u.IsVerified), date(u.CreatedAt))
			}
			if err := t.flush(); err != nil {
				return err
			}
			a.footer(p, res.Total, len(users), len(res.Data))
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&search, "search", "", "filter the page by name or email")
	return cmd
}

func (a *app) usersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			u, err := c.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printUser(u)
		},
	}
}

func (a *app) printUser(u *ds.User) error {
	t := newTable(a.out)
	t.row("ID:", u.ID)
	t.row("Name:", u.Name)
	t.row("Email:", u.Email)
	t.row("Role:", string(u.Role))
	t.row("Active:", yesNo(u.IsActive))
	t.row("Verified:", yesNo(u.IsVerified))
	t.row("Created:", date(u.CreatedAt))
	return t.flush()
}

func (a *app) usersUpdateCmd() *cobra.Command {
	var (
		email, name, role string
		active, verified  bool
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change a user's email, name, role or flags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req dto.UpdateUserRequest
			flags := cmd.Flags()
			if flags.Changed("email") {
				req.Email = &email
			}
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("role") {
				r := ds.Role(role)
				if r != ds.RoleAdmin && r != ds.RoleMarketplace {
					return fmt.Errorf("role must be %q or %q", ds.RoleAdmin, ds.RoleMarketplace)
				}
				req.Role = &r
			}
			if flags.Changed("active") {
				req.IsActive = &active
			}
			if flags.Changed("verified") {
				req.IsVerified = &verified
			}
			if req.IsEmpty() {
				return fmt.Errorf("nothing to update")
			}

			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			u, err := c.UpdateUser(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return a.printUser(u)
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().StringVar(&name, "name", "", "new display name")
	cmd.Flags().StringVar(&role, "role", "", "admin or marketplace")
	cmd.Flags().BoolVar(&active, "active", false, "account is active")
	cmd.Flags().BoolVar(&verified, "verified", false, "email is verified")
	return cmd
}

func (a *app) usersPasswdCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "passwd <id>",
		Short: "Set a user's password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			res, err := c.UpdateUserPassword(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			res, err := c.DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}
}
