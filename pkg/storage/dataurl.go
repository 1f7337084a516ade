// Package storage keeps processed profile pictures somewhere a browser can
// load them from.
package storage

import (
	"context"
	"encoding/base64"

	"mancarijo/internal/domain"
)

type dataURLStore struct{}

// NewDataURLStore inlines the picture into the user record as a base64
// data URL. Used when no bucket is configured.
func NewDataURLStore() domain.PictureStore {
	return dataURLStore{}
}

func (dataURLStore) Store(_ context.Context, _ string, jpeg []byte) (string, error) {
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(jpeg), nil
}
