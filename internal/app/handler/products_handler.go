package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"marketadmin/internal/app/ds"
	"marketadmin/internal/app/repository"
	"marketadmin/internal/app/storage"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxUploadMemory bounds the multipart parts kept in memory; larger files
// spill to temporary files.
const maxUploadMemory = 32 << 20

func (h *Handler) GetProducts(c *gin.Context) {
	limit, offset, err := pagination(c)
	if err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	products, total, err := h.Repository.ListProducts(repository.ProductFilter{
		Limit:    limit,
		Offset:   offset,
		Platform: c.Query("platform"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "total": total})
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.Repository.GetProduct(c.Param("id"))
	if err != nil {
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	in, err := h.parseProductForm(c)
	if err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	if err := h.storeProductFiles(c, &in); err != nil {
		errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	product, err := h.Repository.CreateProduct(in)
	if err != nil {
		h.removeFiles(c, newRefs(in))
		repositoryError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	in, err := h.parseProductForm(c)
	if err != nil {
		errorHandler(c, http.StatusBadRequest, err)
		return
	}
	if err := h.storeProductFiles(c, &in); err != nil {
		errorHandler(c, http.StatusInternalServerError, err)
		return
	}

	product, previous, err := h.Repository.UpdateProduct(c.Param("id"), in)
	if err != nil {
		h.removeFiles(c, newRefs(in))
		repositoryError(c, err)
		return
	}
	h.removeFiles(c, replacedRefs(previous, product))
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	product, err := h.Repository.DeleteProduct(c.Param("id"))
	if err != nil {
		repositoryError(c, err)
		return
	}
	h.removeFiles(c, productRefs(product))
	message(c, "product deleted successfully")
}

// parseProductForm reads the text parts of the product form. platform_ids
// and category_ids are JSON arrays sent as strings.
func (h *Handler) parseProductForm(c *gin.Context) (repository.ProductInput, error) {
	var in repository.ProductInput
	if err := c.Request.ParseMultipartForm(maxUploadMemory); err != nil {
		return in, fmt.Errorf("invalid multipart form: %w", err)
	}

	in.Name = strings.TrimSpace(c.PostForm("name"))
	if in.Name == "" {
		return in, errors.New("name is required")
	}
	in.Description = c.PostForm("description")

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil || price < 0 {
		return in, errors.New("price must be a non-negative number")
	}
	in.Price = price

	if raw := c.PostForm("discount_percentage"); raw != "" {
		d, err := strconv.ParseFloat(raw, 64)
		if err != nil || d < 0 || d > 100 {
			return in, errors.New("discount_percentage must be between 0 and 100")
		}
		in.DiscountPercentage = &d
	}

	if in.PlatformIDs, err = jsonList(c.PostForm("platform_ids")); err != nil {
		return in, fmt.Errorf("platform_ids: %w", err)
	}
	if in.CategoryIDs, err = jsonList(c.PostForm("category_ids")); err != nil {
		return in, fmt.Errorf("category_ids: %w", err)
	}

	in.IsActive = true
	if raw := c.PostForm("is_active"); raw != "" {
		if in.IsActive, err = strconv.ParseBool(raw); err != nil {
			return in, errors.New("is_active must be true or false")
		}
	}
	return in, nil
}

func jsonList(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, errors.New("must be a JSON array of strings")
	}
	return out, nil
}

// storeProductFiles uploads main_image, additional_images and file and
// records their references on in. When one upload fails the files already
// stored for this request are removed again.
func (h *Handler) storeProductFiles(c *gin.Context, in *repository.ProductInput) (err error) {
	defer func() {
		if err != nil {
			h.removeFiles(c, newRefs(*in))
		}
	}()

	form := c.Request.MultipartForm
	if form == nil {
		return nil
	}

	if fh := first(form.File["main_image"]); fh != nil {
		ref, err := h.storeFile(c, "main", fh)
		if err != nil {
			return err
		}
		in.MainImageURL = ref
	}
	for _, fh := range form.File["additional_images"] {
		ref, err := h.storeFile(c, "extra", fh)
		if err != nil {
			return err
		}
		in.AdditionalImageURLs = append(in.AdditionalImageURLs, ref)
	}
	if fh := first(form.File["file"]); fh != nil {
		ref, err := h.storeFile(c, "file", fh)
		if err != nil {
			return err
		}
		in.FileURL = ref
	}
	return nil
}

func (h *Handler) storeFile(c *gin.Context, prefix string, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	ref, err := h.Uploads.Put(c.Request.Context(), storage.ObjectName(prefix, fh.Filename), f, fh.Size)
	if err != nil {
		return "", fmt.Errorf("store %s: %w", fh.Filename, err)
	}
	return ref, nil
}

func (h *Handler) removeFiles(c *gin.Context, refs []string) {
	for _, ref := range refs {
		if err := h.Uploads.Remove(c.Request.Context(), ref); err != nil {
			logrus.Warnf("Failed to delete %s: %v", ref, err)
		}
	}
}

func first(files []*multipart.FileHeader) *multipart.FileHeader {
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

func productRefs(p *ds.Product) []string {
	var refs []string
	if p.MainImageURL != "" {
		refs = append(refs, p.MainImageURL)
	}
	refs = append(refs, p.AdditionalImageURLs...)
	if p.FileURL != "" {
		refs = append(refs, p.FileURL)
	}
	return refs
}

// newRefs lists the files stored for in, to undo them on failure.
func newRefs(in repository.ProductInput) []string {
	return productRefs(&ds.Product{
		MainImageURL:        in.MainImageURL,
		AdditionalImageURLs: in.AdditionalImageURLs,
		FileURL:             in.FileURL,
	})
}

// replacedRefs lists the references of before that after no longer uses.
func replacedRefs(before, after *ds.Product) []string {
	keep := make(map[string]bool)
	for _, ref := range productRefs(after) {
		keep[ref] = true
	}
	var out []string
	for _, ref := range productRefs(before) {
		if !keep[ref] {
			out = append(out, ref)
		}
	}
	return out
}
