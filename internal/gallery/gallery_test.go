package gallery

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"employee-list/internal/apperror"
	"employee-list/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const maxUpload = 5 * 1024 * 1024

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	gifHeader = []byte("GIF89a")
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(config.GalleryConfig{
		Dir:             filepath.Join(t.TempDir(), "employee_images"),
		URLPrefix:       "/uploads/employee_images/",
		MaxUploadBytes:  maxUpload,
		PlaceholderFile: "profile_placeholder.png",
	}, zap.NewNop())
	require.NoError(t, err)
	return store
}

type upload struct {
	name    string
	content []byte
}

// fileHeaders runs the uploads through a real multipart form so sizes and temp files
// behave like they do for requests
func fileHeaders(t *testing.T, uploads ...upload) []*multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, u := range uploads {
		part, err := w.CreateFormFile("employee_photo_upload", u.name)
		require.NoError(t, err)
		_, err = part.Write(u.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["employee_photo_upload"]
}

func image(header []byte, size int) []byte {
	content := make([]byte, size)
	copy(content, header)
	return content
}

func TestUploadSizeLimit(t *testing.T) {
	store := newTestStore(t)

	urls, err := store.UploadImages(fileHeaders(t, upload{name: "big.png", content: image(pngHeader, maxUpload+1)}), "", "")
	require.NoError(t, err)
	assert.Empty(t, urls)

	urls, err = store.UploadImages(fileHeaders(t, upload{name: "fits.png", content: image(pngHeader, maxUpload-1)}), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/employee_images/fits.png"}, urls)

	info, err := os.Stat(filepath.Join(store.Dir(), "fits.png"))
	require.NoError(t, err)
	assert.Equal(t, int64(maxUpload-1), info.Size())
}

func TestUploadRejectsNonImages(t *testing.T) {
	store := newTestStore(t)

	urls, err := store.UploadImages(fileHeaders(t,
		upload{name: "notes.png", content: []byte("just some text")},
		upload{name: "anim.gif", content: image(gifHeader, 64)},
	), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/employee_images/anim.gif"}, urls)
}

func TestUploadRenamesToEmployeeName(t *testing.T) {
	store := newTestStore(t)

	urls, err := store.UploadImages(fileHeaders(t, upload{name: "IMG_0001.PNG", content: image(pngHeader, 128)}), "Anna", "Van Muster")
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/employee_images/van-muster-anna.png"}, urls)

	// a mismatching extension is replaced by the detected type's one
	urls, err = store.UploadImages(fileHeaders(t, upload{name: "photo.txt", content: image(gifHeader, 128)}), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/employee_images/photo.gif"}, urls)
}

func TestUploadSanitizesFileName(t *testing.T) {
	store := newTestStore(t)

	urls, err := store.UploadImages(fileHeaders(t, upload{name: "../../etc/my photo.png", content: image(pngHeader, 32)}), "", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"/uploads/employee_images/my-photo.png"}, urls)

	_, err = os.Stat(filepath.Join(store.Dir(), "my-photo.png"))
	assert.NoError(t, err)
}

func TestListImageURLs(t *testing.T) {
	store := newTestStore(t)

	_, err := store.UploadImages(fileHeaders(t,
		upload{name: "b.png", content: image(pngHeader, 32)},
		upload{name: "a.png", content: image(pngHeader, 32)},
	), "", "")
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(filepath.Join(store.Dir(), "nested"), 0o755))
	// an upload still being written
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), ".upload-1234"), []byte("partial"), 0o600))

	urls, err := store.ListImageURLs()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/uploads/employee_images/a.png",
		"/uploads/employee_images/b.png",
		"/uploads/employee_images/profile_placeholder.png",
	}, urls)
}

func TestDeleteImage(t *testing.T) {
	store := newTestStore(t)
	outside := filepath.Join(filepath.Dir(store.Dir()), "secret.png")
	require.NoError(t, os.WriteFile(outside, []byte("x"), 0o644))

	urls, err := store.UploadImages(fileHeaders(t, upload{name: "a.png", content: image(pngHeader, 32)}), "", "")
	require.NoError(t, err)
	require.Len(t, urls, 1)

	name, err := store.DeleteImage("https://example.com" + urls[0])
	require.NoError(t, err)
	assert.Equal(t, "a.png", name)

	_, err = store.DeleteImage(urls[0])
	assert.Equal(t, apperror.CodeNotFound, apperror.GetCode(err))

	for _, raw := range []string{
		"/uploads/employee_images/../secret.png",
		"/uploads/employee_images/%2e%2e/secret.png",
		"/uploads/other/a.png",
		"/uploads/employee_images/",
		"/uploads/employee_images/profile_placeholder.png",
		"/uploads/employee_images/.upload-1234",
	} {
		_, err := store.DeleteImage(raw)
		assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err), "url %q", raw)
	}

	_, err = os.Stat(outside)
	assert.NoError(t, err, "files outside the gallery are untouched")
}

func TestDeleteImageKeepsTemporaryFiles(t *testing.T) {
	store := newTestStore(t)
	tmp := filepath.Join(store.Dir(), ".upload-1234")
	require.NoError(t, os.WriteFile(tmp, []byte("partial"), 0o600))

	_, err := store.DeleteImage("/uploads/employee_images/.upload-1234")
	assert.Equal(t, apperror.CodeValidation, apperror.GetCode(err))

	_, err = os.Stat(tmp)
	assert.NoError(t, err)
}

func TestNewStoreCreatesPlaceholder(t *testing.T) {
	store := newTestStore(t)

	content, err := os.ReadFile(filepath.Join(store.Dir(), "profile_placeholder.png"))
	require.NoError(t, err)
	assert.Equal(t, "image/png", http.DetectContentType(content))

	// a customised placeholder survives a restart
	custom := image(gifHeader, 64)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "profile_placeholder.png"), custom, 0o644))
	_, err = NewStore(config.GalleryConfig{
		Dir:             store.Dir(),
		URLPrefix:       "/uploads/employee_images",
		MaxUploadBytes:  maxUpload,
		PlaceholderFile: "profile_placeholder.png",
	}, zap.NewNop())
	require.NoError(t, err)

	content, err = os.ReadFile(filepath.Join(store.Dir(), "profile_placeholder.png"))
	require.NoError(t, err)
	assert.Equal(t, custom, content)
}

func TestNewStoreRejectsPlaceholderPath(t *testing.T) {
	_, err := NewStore(config.GalleryConfig{
		Dir:             t.TempDir(),
		URLPrefix:       "/uploads/employee_images",
		MaxUploadBytes:  maxUpload,
		PlaceholderFile: "../profile_placeholder.png",
	}, zap.NewNop())
	assert.Error(t, err)
}

func TestPlaceholderURL(t *testing.T) {
	store := newTestStore(t)
	assert.Equal(t, "/uploads/employee_images/profile_placeholder.png", store.PlaceholderURL())
	assert.Equal(t, "/uploads/employee_images", store.URLPrefix())
}
