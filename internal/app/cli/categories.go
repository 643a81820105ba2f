package cli

import (
	"github.com/spf13/cobra"
)

func (a *app) categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage product categories",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			categories, err := c.GetCategories(cmd.Context())
			if err != nil {
				return err
			}
			t := newTable(a.out, "ID", "NAME", "SLUG", "CREATED")
			for _, cat := range categories {
				t.row(cat.ID, cat.Name, cat.Slug, date(cat.CreatedAt))
			}
			return t.flush()
		},
	}

	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Add a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := c.CreateCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("Created category %s (%s)\n", cat.Name, cat.ID)
			return nil
		},
	}

	update := &cobra.Command{
		Use:   "update <id> <name>",
		Short: "Rename a category",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			cat, err := c.UpdateCategory(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			a.printf("Updated category %s (%s)\n", cat.Name, cat.ID)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			res, err := c.DeleteCategory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}

	cmd.AddCommand(list, create, update, del)
	return cmd
}
