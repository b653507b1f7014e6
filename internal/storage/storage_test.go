package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"tourdesk/internal/domain"
)

func TestValidateImage(t *testing.T) {
	testCases := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{name: "jpg ok", filename: "beach.jpg", size: 1024, wantErr: false},
		{name: "jpeg ok", filename: "beach.jpeg", size: 1024, wantErr: false},
		{name: "png ok", filename: "beach.png", size: 1024, wantErr: false},
		{name: "webp ok", filename: "beach.webp", size: 1024, wantErr: false},
		{name: "uppercase extension ok", filename: "BEACH.JPG", size: 1024, wantErr: false},
		{name: "gif rejected", filename: "beach.gif", size: 1024, wantErr: true},
		{name: "pdf rejected", filename: "brochure.pdf", size: 1024, wantErr: true},
		{name: "no extension rejected", filename: "beach", size: 1024, wantErr: true},
		{name: "exactly at limit ok", filename: "beach.jpg", size: MaxImageSize, wantErr: false},
		{name: "over limit rejected", filename: "beach.jpg", size: MaxImageSize + 1, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateImage(tc.filename, tc.size)
			if tc.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidArgument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSafeFilename(t *testing.T) {
	name := SafeFilename("My Beach Photo!.JPG")

	assert.True(t, strings.HasSuffix(name, ".jpg"))
	assert.Contains(t, name, "my_beach_photo")
	assert.NotContains(t, name, " ")
	assert.NotContains(t, name, "!")

	// Two calls for the same input must never collide.
	assert.NotEqual(t, name, SafeFilename("My Beach Photo!.JPG"))
}

func TestSafeFilename_AllUnsafeChars(t *testing.T) {
	name := SafeFilename("@#$%.png")
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Contains(t, name, "image")
}

func TestDiskStore_SaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/uploads")
	ctx := context.Background()

	url, err := store.Save(ctx, "tour-packages/p-1", "beach.jpg", []byte("not really a jpeg"))
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/tour-packages/p-1/"))

	rel := strings.TrimPrefix(url, "/uploads/")
	onDisk := filepath.Join(root, filepath.FromSlash(rel))
	data, err := os.ReadFile(onDisk)
	assert.NoError(t, err)
	assert.Equal(t, []byte("not really a jpeg"), data)

	assert.NoError(t, store.Delete(ctx, url))
	_, err = os.Stat(onDisk)
	assert.True(t, os.IsNotExist(err))

	// Deleting again is a no-op, not an error.
	assert.NoError(t, store.Delete(ctx, url))
}

func TestDiskStore_Delete_UnmanagedURL(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/uploads")
	err := store.Delete(context.Background(), "https://elsewhere.example.com/x.jpg")
	assert.Error(t, err)
}

func TestDiskStore_SaveAll(t *testing.T) {
	root := t.TempDir()
	store := NewDiskStore(root, "/uploads")

	files := []Upload{
		{Filename: "one.jpg", Data: []byte("one")},
		{Filename: "two.png", Data: []byte("two")},
		{Filename: "three.webp", Data: []byte("three")},
	}

	urls, err := store.SaveAll(context.Background(), "tour-packages/p-1", files)
	assert.NoError(t, err)
	assert.Len(t, urls, 3)
	// Order is preserved even though writes run concurrently.
	assert.Contains(t, urls[0], "one")
	assert.Contains(t, urls[1], "two")
	assert.Contains(t, urls[2], "three")
}
