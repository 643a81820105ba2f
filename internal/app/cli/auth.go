package cli

import (
	"errors"
	"time"

	"marketadmin/internal/app/session"

	"github.com/spf13/cobra"
)

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the token for later commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := c.AdminLogin(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if resp.Token == "" {
				a.printf("Login accepted but no token was issued\n")
				return nil
			}
			a.printf("Logged in as %s (%s)\n", resp.User.Email, resp.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (a *app) registerCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			resp, err := c.AdminRegister(cmd.Context(), email, password, name)
			if err != nil {
				return err
			}
			a.printf("%s: %s <%s>\n", resp.Message, resp.User.Name, resp.User.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	for _, f := range []string{"email", "password", "name"} {
		_ = cmd.MarkFlagRequired(f)
	}
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.ClearToken(cmd.Context()); err != nil {
				return err
			}
			a.printf("Logged out\n")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who the stored token belongs to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			claims, err := c.Session().Claims()
			switch {
			case errors.Is(err, session.ErrNoToken):
				return errNotLoggedIn
			case err != nil:
				a.printf("Logged in (token is not a readable JWT)\n")
				return nil
			}

			t := newTable(a.out)
			t.row("User ID:", orDash(claims.UserID))
			t.row("Email:", orDash(claims.Email))
			t.row("Role:", orDash(claims.Role))
			if claims.ExpiresAt != nil {
				expires := claims.ExpiresAt.Local().Format(time.RFC1123)
				if claims.Expired(time.Now()) {
					expires += " (expired)"
				}
				t.row("Expires:", expires)
			}
			return t.flush()
		},
	}
}
