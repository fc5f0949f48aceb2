package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilePictureKey(t *testing.T) {
	key, err := ProfilePictureKey(42, "image/PNG")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "profile-pictures/42/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	_, err = ProfilePictureKey(42, "application/pdf")
	var unsupported ErrUnsupportedType
	assert.True(t, errors.As(err, &unsupported))
}

func TestPresignProducesSignedPut(t *testing.T) {
	p := NewS3Presigner("us-east-1", "salon-uploads", "AKIDEXAMPLE", "secret")

	up, err := p.ProfilePictureUpload(context.Background(), 7, "image/jpeg")
	require.NoError(t, err)

	assert.Equal(t, "PUT", up.Method)
	assert.Contains(t, up.URL, "salon-uploads")
	assert.Contains(t, up.URL, "X-Amz-Signature=")
	assert.True(t, strings.HasPrefix(up.Key, "profile-pictures/7/"))
}
