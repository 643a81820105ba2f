package cli

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"marketadmin/internal/app/dashboard"
	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/dto"
	"marketadmin/internal/app/form"
	"marketadmin/internal/app/format"
	"marketadmin/internal/app/storage"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func (a *app) productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "products",
		Aliases: []string{"product"},
		Short:   "Manage the product catalog",
	}
	cmd.AddCommand(a.productsListCmd(), a.productsGetCmd(), a.productsCreateCmd(), a.productsUpdateCmd(), a.productsDeleteCmd())
	return cmd
}

func (a *app) productsListCmd() *cobra.Command {
	var page int
	var q dto.ProductQuery
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, one page at a time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			p := dashboard.NewPager(page)
			q.Limit, q.Offset = p.Limit(), p.Offset()
			res, err := c.GetProducts(cmd.Context(), q)
			if err != nil {
				return err
			}

			t := newTable(a.out, "ID", "NAME", "PRICE", "FINAL", "PLATFORMS", "CATEGORIES", "ACTIVE")
			for _, pr := range res.Data {
				t.row(pr.ID, pr.Name,
					format.FormatPrice(pr.Price),
					format.FormatPrice(format.DiscountedPrice(pr.Price, pr.DiscountPercentage)),
					orDash(strings.Join(pr.PlatformNames(), ", ")),
					orDash(strings.Join(pr.CategoryNames(), ", ")),
					yesNo(pr.IsActive))
			}
			if err := t.flush(); err != nil {
				return err
			}
			a.footer(p, res.Total, len(res.Data), len(res.Data))
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().StringVar(&q.Platform, "platform", "", "only products on this platform")
	cmd.Flags().StringVar(&q.Category, "category", "", "only products in this category")
	cmd.Flags().StringVar(&q.Search, "search", "", "name search")
	return cmd
}

func (a *app) productsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			pr, err := c.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			t := newTable(a.out)
			t.row("ID:", pr.ID)
			t.row("Name:", pr.Name)
			t.row("Price:", format.FormatPrice(pr.Price))
			if pr.DiscountPercentage != nil {
				t.row("Discount:", fmt.Sprintf("%g%% (%s)", *pr.DiscountPercentage,
					format.FormatPrice(format.DiscountedPrice(pr.Price, pr.DiscountPercentage))))
			}
			t.row("Platforms:", orDash(strings.Join(pr.PlatformNames(), ", ")))
			t.row("Categories:", orDash(strings.Join(pr.CategoryNames(), ", ")))
			t.row("Active:", yesNo(pr.IsActive))
			t.row("Main image:", orDash(pr.MainImageURL))
			for _, img := range pr.AdditionalImageURLs {
				t.row("Image:", img)
			}
			t.row("File:", orDash(pr.FileURL))
			if err := a.linkRows(cmd.Context(), t, pr); err != nil {
				return err
			}
			t.row("Created:", date(pr.CreatedAt))
			return t.flush()
		},
	}
}

// linkTTL is how long download links printed by "products get" stay valid.
const linkTTL = time.Hour

// linkRows adds presigned download links for files kept in the bucket.
// Other references are served by the backend as they are.
func (a *app) linkRows(ctx context.Context, t *table, pr *ds.Product) error {
	refs := []struct{ label, ref string }{
		{"Main image link:", pr.MainImageURL},
		{"File link:", pr.FileURL},
	}
	for _, r := range refs {
		if !strings.HasPrefix(r.ref, storage.MinIOScheme) {
			continue
		}
		files, err := a.resolver(ctx)
		if err != nil {
			return err
		}
		link, err := files.Link(ctx, r.ref, linkTTL)
		if err != nil {
			t.row(r.label, "unavailable: "+err.Error())
			continue
		}
		t.row(r.label, link)
	}
	return nil
}

// productFlags are the form fields shared by create and update. Files are
// local paths or minio://<key> references.
type productFlags struct {
	name        string
	description string
	price       float64
	platforms   []string
	categories  []string
	inactive    bool
	mainImage   string
	images      []string
	file        string
}

func (f *productFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "product name")
	fs.StringVar(&f.description, "description", "", "HTML description")
	fs.Float64Var(&f.price, "price", 0, "price in rupiah")
	fs.StringSliceVar(&f.platforms, "platform", nil, "platform name (repeatable)")
	fs.StringSliceVar(&f.categories, "category", nil, "category id (repeatable)")
	fs.BoolVar(&f.inactive, "inactive", false, "hide the product from the store")
	fs.StringVar(&f.mainImage, "main-image", "", "main image path or minio:// reference")
	fs.StringSliceVar(&f.images, "image", nil, "additional image (repeatable)")
	fs.StringVar(&f.file, "file", "", "downloadable file")
}

// apply copies the flags the user set onto pf.
func (f *productFlags) apply(fs *pflag.FlagSet, pf *form.ProductForm) {
	if fs.Changed("name") {
		pf.Name = f.name
	}
	if fs.Changed("description") {
		pf.Description = f.description
	}
	if fs.Changed("price") {
		pf.Price = f.price
	}
	if fs.Changed("platform") {
		pf.PlatformIDs = f.platforms
	}
	if fs.Changed("category") {
		pf.CategoryIDs = f.categories
	}
	if fs.Changed("inactive") {
		pf.IsActive = !f.inactive
	}
}

// attach opens the files named by the flags and sets them on pf. The
// returned function closes them.
func (a *app) attach(ctx context.Context, f *productFlags, pf *form.ProductForm) (func(), error) {
	var opened []io.Closer
	closeAll := func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}
	open := func(ref string) (*form.FilePart, error) {
		files, err := a.resolver(ctx)
		if err != nil {
			return nil, err
		}
		rc, err := files.Open(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", ref, err)
		}
		opened = append(opened, rc)
		return &form.FilePart{Filename: path.Base(ref), Reader: rc}, nil
	}

	var err error
	if f.mainImage != "" {
		if pf.MainImage, err = open(f.mainImage); err != nil {
			closeAll()
			return nil, err
		}
	}
	for _, ref := range f.images {
		part, err := open(ref)
		if err != nil {
			closeAll()
			return nil, err
		}
		pf.AdditionalImages = append(pf.AdditionalImages, *part)
	}
	if f.file != "" {
		if pf.File, err = open(f.file); err != nil {
			closeAll()
			return nil, err
		}
	}
	return closeAll, nil
}

func (a *app) productsCreateCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			pf := form.ProductForm{IsActive: true}
			f.apply(cmd.Flags(), &pf)
			done, err := a.attach(cmd.Context(), &f, &pf)
			if err != nil {
				return err
			}
			defer done()

			body, contentType, err := pf.Encode()
			if err != nil {
				return err
			}
			res, err := c.CreateProduct(cmd.Context(), body, contentType)
			if err != nil {
				return err
			}
			a.printf("Created product %v (%v)\n", res["name"], res["id"])
			return nil
		},
	}
	f.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func (a *app) productsUpdateCmd() *cobra.Command {
	var f productFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a product; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			current, err := c.GetProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			pf := productForm(current)
			f.apply(cmd.Flags(), &pf)
			done, err := a.attach(cmd.Context(), &f, &pf)
			if err != nil {
				return err
			}
			defer done()

			body, contentType, err := pf.Encode()
			if err != nil {
				return err
			}
			res, err := c.UpdateProduct(cmd.Context(), args[0], body, contentType)
			if err != nil {
				return err
			}
			a.printf("Updated product %v (%v)\n", res["name"], res["id"])
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

// productForm pre-fills the edit form from the stored product the way the
// edit page does. Files are not re-sent; the backend keeps them.
func productForm(p *ds.Product) form.ProductForm {
	pf := form.ProductForm{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		PlatformIDs: p.PlatformNames(),
		IsActive:    p.IsActive,
	}
	for _, cat := range p.Categories {
		pf.CategoryIDs = append(pf.CategoryIDs, cat.ID)
	}
	return pf
}

func (a *app) productsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.api(cmd.Context())
			if err != nil {
				return err
			}
			res, err := c.DeleteProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			a.printf("%s\n", res.Message)
			return nil
		},
	}
}
