package form

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

type part struct {
	name, filename, contentType, body string
}

func readParts(t *testing.T, body io.Reader, contentType string) []part {
	t.Helper()
	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)

	r := multipart.NewReader(body, params["boundary"])
	var parts []part
	for {
		p, err := r.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(p)
		require.NoError(t, err)
		parts = append(parts, part{
			name:        p.FormName(),
			filename:    p.FileName(),
			contentType: p.Header.Get("Content-Type"),
			body:        string(data),
		})
	}
	return parts
}

func TestProductForm_Encode(t *testing.T) {
	f := &ProductForm{
		Name:        "Photo Pro",
		Description: "<p>Edit <b>photos</b></p>",
		Price:       150000,
		PlatformIDs: []string{"ios", "android"},
		CategoryIDs: []string{"cat-1"},
		IsActive:    true,
		MainImage:   &FilePart{Filename: "main.png", Reader: bytes.NewReader(pngHeader)},
		AdditionalImages: []FilePart{
			{Filename: "shot1.png", Reader: bytes.NewReader(pngHeader)},
			{Filename: "shot2.png", Reader: bytes.NewReader(pngHeader)},
		},
		File: &FilePart{Filename: "readme.txt", Reader: strings.NewReader("hello")},
	}

	body, ct, err := f.Encode()
	require.NoError(t, err)

	parts := readParts(t, body, ct)
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		names = append(names, p.name)
	}
	assert.Equal(t, []string{
		"name", "description", "price", "platform_ids", "category_ids", "is_active",
		"main_image", "additional_images", "additional_images", "file",
	}, names)

	assert.Equal(t, "Photo Pro", parts[0].body)
	assert.Equal(t, "<p>Edit <b>photos</b></p>", parts[1].body)
	assert.Equal(t, "150000", parts[2].body)
	assert.Equal(t, `["ios","android"]`, parts[3].body)
	assert.Equal(t, `["cat-1"]`, parts[4].body)
	assert.Equal(t, "true", parts[5].body)

	assert.Equal(t, "main.png", parts[6].filename)
	assert.Equal(t, "image/png", parts[6].contentType)
	assert.Equal(t, string(pngHeader), parts[6].body)
	assert.Equal(t, "shot2.png", parts[8].filename)

	assert.Equal(t, "readme.txt", parts[9].filename)
	assert.True(t, strings.HasPrefix(parts[9].contentType, "text/plain"))
	assert.Equal(t, "hello", parts[9].body)
}

func TestProductForm_EncodeEmptyIDsAndNoFiles(t *testing.T) {
	f := &ProductForm{Name: "Free Tool", Price: 12.5}

	body, ct, err := f.Encode()
	require.NoError(t, err)

	parts := readParts(t, body, ct)
	require.Len(t, parts, 6)
	assert.Equal(t, "12.5", parts[2].body)
	assert.Equal(t, "[]", parts[3].body)
	assert.Equal(t, "[]", parts[4].body)
	assert.Equal(t, "false", parts[5].body)
}

func TestProductForm_Validate(t *testing.T) {
	_, _, err := (&ProductForm{Price: 10}).Encode()
	assert.Error(t, err)

	_, _, err = (&ProductForm{Name: "x", Price: -1}).Encode()
	assert.Error(t, err)
}

func TestProductForm_FileWithoutReader(t *testing.T) {
	f := &ProductForm{Name: "x", File: &FilePart{Filename: "a.zip"}}
	_, _, err := f.Encode()
	assert.Error(t, err)
}
