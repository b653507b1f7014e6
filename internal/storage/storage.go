package storage

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"tourdesk/internal/domain"
)

// MaxImageSize caps individual uploads at 5 MB.
const MaxImageSize = 5 * 1024 * 1024

const thumbWidth = 640

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ObjectStore abstracts image persistence so handlers and services stay
// storage-agnostic.
type ObjectStore interface {
	Save(ctx context.Context, dir, filename string, data []byte) (string, error)
	SaveAll(ctx context.Context, dir string, files []Upload) ([]string, error)
	Delete(ctx context.Context, url string) error
}

// Upload is one validated file ready for persistence.
type Upload struct {
	Filename string
	Data     []byte
}

// ValidateImage rejects disallowed extensions and oversized payloads
// before anything is written.
func ValidateImage(filename string, size int64) error {
	if !allowedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return fmt.Errorf("%w: invalid image type for %s, only JPG, PNG and WEBP are allowed", domain.ErrInvalidArgument, filename)
	}
	if size > MaxImageSize {
		return fmt.Errorf("%w: image %s exceeds 5MB limit", domain.ErrInvalidArgument, filename)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_\-]`)

// SafeFilename sanitizes the original name and prefixes a unique id so
// concurrent uploads never collide.
func SafeFilename(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	name := strings.TrimSuffix(original, filepath.Ext(original))
	name = strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	name = unsafeChars.ReplaceAllString(name, "")
	if name == "" {
		name = "image"
	}
	return fmt.Sprintf("%d-%s-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], name, ext)
}

// DiskStore writes objects under a root directory and maps them to URLs
// under a base URL. It also writes a downscaled thumbnail next to each
// decodable image.
type DiskStore struct {
	rootDir string
	baseURL string
}

func NewDiskStore(rootDir, baseURL string) *DiskStore {
	return &DiskStore{rootDir: rootDir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *DiskStore) Save(ctx context.Context, dir, filename string, data []byte) (string, error) {
	destDir := filepath.Join(s.rootDir, dir)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create storage dir: %w", err)
	}

	safe := SafeFilename(filename)
	dest := filepath.Join(destDir, safe)
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", err)
	}

	s.writeThumbnail(destDir, safe, data)

	return s.baseURL + "/" + strings.TrimLeft(filepath.ToSlash(filepath.Join(dir, safe)), "/"), nil
}

// SaveAll uploads every file concurrently and waits for the batch. The
// first error wins; already-written siblings are left in place for the
// caller's cleanup pass.
func (s *DiskStore) SaveAll(ctx context.Context, dir string, files []Upload) ([]string, error) {
	urls := make([]string, len(files))
	errs := make([]error, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		wg.Add(1)
		go func(i int, f Upload) {
			defer wg.Done()
			urls[i], errs[i] = s.Save(ctx, dir, f.Filename, f.Data)
		}(i, f)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return urls, nil
}

func (s *DiskStore) Delete(ctx context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok {
		return fmt.Errorf("url %q is not managed by this store", url)
	}

	path := filepath.Join(s.rootDir, filepath.FromSlash(rel))
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	_ = os.Remove(thumbPath(path))
	return nil
}

// writeThumbnail is best effort; non-image payloads and encode failures
// are ignored.
func (s *DiskStore) writeThumbnail(destDir, filename string, data []byte) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return
	}
	thumb := imaging.Resize(img, thumbWidth, 0, imaging.Lanczos)
	_ = imaging.Save(thumb, thumbPath(filepath.Join(destDir, filename)))
}

func thumbPath(path string) string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".webp") {
		// imaging cannot encode webp; thumbnails fall back to jpeg.
		return strings.TrimSuffix(path, ext) + ".thumb.jpg"
	}
	return strings.TrimSuffix(path, ext) + ".thumb" + ext
}

var _ ObjectStore = (*DiskStore)(nil)
