package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadService_CheckFile(t *testing.T) {
	svc := NewUploadService(nil, nil)

	tests := []struct {
		filename string
		size     int64
		wantExt  string
		wantErr  error
	}{
		{"watch.JPG", 1024, ".jpg", nil},
		{"watch.webp", MaxUploadSize, ".webp", nil},
		{"watch.gif", 1024, "", ErrUnsupportedFileType},
		{"noext", 1024, "", ErrUnsupportedFileType},
		{"watch.png", MaxUploadSize + 1, "", ErrFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ext, err := svc.CheckFile(tt.filename, tt.size)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestUploadService_Upload(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(StorageConfig{BasePath: dir})
	require.NoError(t, err)
	svc := NewUploadService(storage, nil)

	resp, err := svc.Upload(context.Background(), "Kamasu.PNG", "", pngBytes)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(resp.Filename, ".png"))
	assert.Len(t, resp.Filename, 36+len(".png"))
	assert.Equal(t, "/uploads/"+resp.Filename, resp.URL)
	assert.Equal(t, "image/png", resp.MimeType)
	assert.Equal(t, int64(len(pngBytes)), resp.Size)

	_, err = os.Stat(filepath.Join(dir, resp.Filename))
	assert.NoError(t, err)

	big := bytes.Repeat([]byte{0}, MaxUploadSize+1)
	_, err = svc.Upload(context.Background(), "big.jpg", "image/jpeg", big)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}
