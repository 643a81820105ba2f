package cli

import (
	"context"

	"marketadmin/internal/app/dashboard"
	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
	"marketadmin/internal/app/format"

	"github.com/spf13/cobra"
)

func (a *app) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orders",
		Aliases: []string{"transactions"},
		Short:   "Browse orders",
	}

	var page int
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List all orders, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listOrders(cmd.Context(), page, func(c context.Context, limit, offset int) (*dto.Page[ds.Order], error) {
				return a.client.GetAllOrders(c, limit, offset)
			}, func(orders []ds.Order) []ds.Order {
				return dashboard.FilterOrdersByStatus(orders, status)
			})
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().StringVar(&status, "status", "all", "filter the page by order status")

	var paidPage int
	paid := &cobra.Command{
		Use:   "paid",
		Short: "List paid orders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.listOrders(cmd.Context(), paidPage, func(c context.Context, limit, offset int) (*dto.Page[ds.Order], error) {
				return a.client.GetPaidOrders(c, limit, offset)
			}, nil)
		},
	}
	paid.Flags().IntVar(&paidPage, "page", 1, "page number")

	cmd.AddCommand(list, paid)
	return cmd
}

type orderLister func(ctx context.Context, limit, offset int) (*dto.Page[ds.Order], error)

func (a *app) listOrders(ctx context.Context, page int, fetch orderLister, filter func([]ds.Order) []ds.Order) error {
	if _, err := a.api(ctx); err != nil {
		return err
	}
	p := dashboard.NewPager(page)
	res, err := fetch(ctx, p.Limit(), p.Offset())
	if err != nil {
		return err
	}
	orders := res.Data
	if filter != nil {
		orders = filter(orders)
	}

	t := newTable(a.out, "ID", "USER", "PRODUCT", "TOTAL", "STATUS", "LICENSE", "CREATED")
	for _, o := range orders {
		t.row(o.ID, orderUser(o), orderProduct(o), format.FormatPrice(o.Total),
			dashboard.OrderStatusLabel(o.Status), orDash(o.LicenseID), date(o.CreatedAt))
	}
	if err := t.flush(); err != nil {
		return err
	}
	a.footer(p, res.Total, len(orders), len(res.Data))
	return nil
}

func orderUser(o ds.Order) string {
	if o.User == nil {
		return "-"
	}
	return o.User.Email
}

func orderProduct(o ds.Order) string {
	if o.Product == nil {
		return "-"
	}
	return o.Product.Name
}

func (a *app) licensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "licenses",
		Aliases: []string{"license"},
		Short:   "Issue and track product licenses",
	}

	var (
		page     int
		redeemed string
		search   string
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List issued licenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := dashboard.ParseRedeemedFilter(redeemed)
			if err != nil {
				return err
			}
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			p := dashboard.NewPager(page)
			res, err := c.GetPaidOrders(cmd.Context(), p.Limit(), p.Offset())
			if err != nil {
				return err
			}

			orders := dashboard.FilterLicenses(res.Data, filter, search)
			t := newTable(a.out, "ORDER", "LICENSE", "PRODUCT", "USER", "TOTAL", "REDEEMED", "ISSUED")
			for _, o := range orders {
				t.row(o.ID, orDash(o.LicenseID), orderProduct(o), orderUser(o),
					format.FormatPrice(o.Total), dashboard.RedeemedLabel(o), date(o.CreatedAt))
			}
			if err := t.flush(); err != nil {
				return err
			}
			a.footer(p, res.Total, len(orders), len(res.Data))
			return nil
		},
	}
	list.Flags().IntVar(&page, "page", 1, "page number")
	list.Flags().StringVar(&redeemed, "redeemed", "all", "all, redeemed or not_redeemed")
	list.Flags().StringVar(&search, "search", "", "filter by license, product or user")

	var productID, userID string
	var total float64
	create := &cobra.Command{
		Use:   "create",
		Short: "Issue a license to a user without payment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			var totalPtr *float64
			if cmd.Flags().Changed("total") {
				totalPtr = &total
			}
			o, err := c.CreateLicense(cmd.Context(), productID, userID, totalPtr)
			if err != nil {
				return err
			}
			a.printf("Issued license %s on order %s (%s)\n", orDash(o.LicenseID), o.ID, format.FormatPrice(o.Total))
			return nil
		},
	}
	create.Flags().StringVar(&productID, "product", "", "product id")
	create.Flags().StringVar(&userID, "user", "", "user id")
	create.Flags().Float64Var(&total, "total", 0, "amount charged (defaults to the product price)")
	_ = create.MarkFlagRequired("product")
	_ = create.MarkFlagRequired("user")

	cmd.AddCommand(list, create, a.redeemCmd("redeem", "Mark a license as redeemed", true),
		a.redeemCmd("unredeem", "Mark a license as not redeemed", false))
	return cmd
}

func (a *app) redeemCmd(use, short string, redeemed bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <order-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			o, err := c.UpdateLicenseRedeemed(cmd.Context(), args[0], redeemed)
			if err != nil {
				return err
			}
			a.printf("License %s: %s\n", orDash(o.LicenseID), dashboard.RedeemedLabel(*o))
			return nil
		},
	}
}
