package cli

import (
	"marketadmin/internal/app/dashboard"
	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/format"

	"github.com/spf13/cobra"
)

func (a *app) paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "payments",
		Aliases: []string{"payment"},
		Short:   "Review manual transfer payments",
	}

	var page int
	pending := &cobra.Command{
		Use:   "pending",
		Short: "List payments waiting for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			p := dashboard.NewPager(page)
			res, err := c.GetPendingPayments(cmd.Context(), p.Limit(), p.Offset())
			if err != nil {
				return err
			}

			t := newTable(a.out, "ID", "ORDER", "USER", "PRODUCT", "TOTAL", "PROOF", "CREATED")
			for _, pay := range res.Data {
				user, product, total := "-", "-", "-"
				if o := pay.Order; o != nil {
					total = format.FormatPrice(o.Total)
					if o.User != nil {
						user = o.User.Email
					}
					if o.Product != nil {
						product = o.Product.Name
					}
				}
				t.row(pay.ID, pay.OrderID, user, product, total, orDash(pay.TransferProof), date(pay.CreatedAt))
			}
			if err := t.flush(); err != nil {
				return err
			}
			a.footer(p, res.Total, len(res.Data), len(res.Data))
			return nil
		},
	}
	pending.Flags().IntVar(&page, "page", 1, "page number")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			pay, err := c.GetPayment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printPayment(pay)
		},
	}

	cmd.AddCommand(pending, get,
		a.decideCmd("approve", "Approve a payment and issue its license", ds.PaymentStatusApproved),
		a.decideCmd("reject", "Reject a payment", ds.PaymentStatusRejected))
	return cmd
}

func (a *app) decideCmd(use, short string, status ds.PaymentStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			pay, err := c.ApprovePayment(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			return a.printPayment(pay)
		},
	}
}

func (a *app) printPayment(pay *ds.Payment) error {
	proof := orDash(pay.TransferProof)
	if pay.ProofIsPDF() {
		proof += " (PDF)"
	}

	t := newTable(a.out)
	t.row("ID:", pay.ID)
	t.row("Status:", string(pay.Status))
	t.row("Order:", pay.OrderID)
	if o := pay.Order; o != nil {
		t.row("Order status:", dashboard.OrderStatusLabel(o.Status))
		t.row("Total:", format.FormatPrice(o.Total))
		if o.User != nil {
			t.row("User:", o.User.Name+" <"+o.User.Email+">")
		}
		if o.Product != nil {
			t.row("Product:", o.Product.Name)
		}
	}
	t.row("Proof:", proof)
	if pay.ApprovedAt != nil {
		t.row("Reviewed:", date(*pay.ApprovedAt)+" by "+orDash(pay.ApprovedBy))
	}
	t.row("Created:", date(pay.CreatedAt))
	return t.flush()
}
