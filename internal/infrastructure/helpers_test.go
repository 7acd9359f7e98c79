package infrastructure

import (
	"testing"

	"github.com/Maria-Yarosh/shop.project.SF/pkg/e"
	"github.com/stretchr/testify/assert"
)

func TestGetExtensionFromMIME(t *testing.T) {
	tests := []struct {
		mime    string
		want    string
		wantErr error
	}{
		{mime: "image/jpeg", want: "jpg"},
		{mime: "image/jpg", want: "jpg"},
		{mime: "image/png", want: "png"},
		{mime: "image/webp", want: "webp"},
		{mime: "image/gif", want: "bin", wantErr: e.ErrUnsupportedMediaType},
	}

	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			ext, err := GetExtensionFromMIME(tt.mime)
			assert.Equal(t, tt.want, ext)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, IsSupportedImage(tt.mime))
			} else {
				assert.NoError(t, err)
				assert.True(t, IsSupportedImage(tt.mime))
			}
		})
	}
}
