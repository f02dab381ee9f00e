package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swear-jar/config"
)

func TestNewR2Client(t *testing.T) {
	_, err := NewR2Client(context.Background(), config.ArchiveConfig{AccountID: "acc", Bucket: "jars"})
	require.Error(t, err)

	r2, err := NewR2Client(context.Background(), config.ArchiveConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		AccessKeySecret: "secret",
		Bucket:          "jars",
	})
	require.NoError(t, err)
	assert.Equal(t, "jars", r2.bucket)
	assert.Equal(t, "https://acc.r2.cloudflarestorage.com", *r2.client.Options().BaseEndpoint)
}
