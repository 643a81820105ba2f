// Package form builds the multipart bodies for the product write endpoints.
package form

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = validator.New()

// sniffLen is how much of a file is read to detect its content type.
const sniffLen = 3072

// FilePart is one binary part of the form.
type FilePart struct {
	Filename string
	Reader   io.Reader
}

// ProductForm is the create/update product payload. Platform ids are
// platform names as the backend keys platforms by name; category ids are
// category ids.
type ProductForm struct {
	Name             string  `validate:"required"`
	Description      string  // HTML
	Price            float64 `validate:"gte=0"`
	PlatformIDs      []string
	CategoryIDs      []string
	IsActive         bool
	MainImage        *FilePart
	AdditionalImages []FilePart
	File             *FilePart
}

func (f *ProductForm) Validate() error {
	return validate.Struct(f)
}

// Encode writes the form as multipart/form-data and returns the body and
// the Content-Type header value, which carries the boundary. Platform and
// category ids are always sent, as JSON arrays, even when empty.
func (f *ProductForm) Encode() (io.Reader, string, error) {
	if err := f.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid product form: %w", err)
	}

	platformIDs, err := jsonArray(f.PlatformIDs)
	if err != nil {
		return nil, "", err
	}
	categoryIDs, err := jsonArray(f.CategoryIDs)
	if err != nil {
		return nil, "", err
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"name", f.Name},
		{"description", f.Description},
		{"price", strconv.FormatFloat(f.Price, 'f', -1, 64)},
		{"platform_ids", platformIDs},
		{"category_ids", categoryIDs},
		{"is_active", strconv.FormatBool(f.IsActive)},
	}
	for _, field := range fields {
		if err := w.WriteField(field.name, field.value); err != nil {
			return nil, "", fmt.Errorf("write %s: %w", field.name, err)
		}
	}

	if f.MainImage != nil {
		if err := writeFile(w, "main_image", *f.MainImage); err != nil {
			return nil, "", err
		}
	}
	for _, img := range f.AdditionalImages {
		if err := writeFile(w, "additional_images", img); err != nil {
			return nil, "", err
		}
	}
	if f.File != nil {
		if err := writeFile(w, "file", *f.File); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return body, w.FormDataContentType(), nil
}

func jsonArray(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(w *multipart.Writer, field string, part FilePart) error {
	if part.Reader == nil {
		return fmt.Errorf("%s: %w", field, errors.New("no content"))
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(part.Reader, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read %s: %w", part.Filename, err)
	}
	head = head[:n]

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(part.Filename)))
	h.Set("Content-Type", mimetype.Detect(head).String())

	pw, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(pw, io.MultiReader(bytes.NewReader(head), part.Reader)); err != nil {
		return fmt.Errorf("copy %s: %w", part.Filename, err)
	}
	return nil
}
