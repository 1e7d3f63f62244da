// Package clientstate persists small client-side records (the auth session, the
// optional cart snapshot) under fixed keys. Each backend scopes keys by a
// device/profile name so several storefront clients can share one store.
package clientstate

import (
	"context"
)

// Well-known record keys.
const (
	KeyAuth = "auth-storage"
	KeyCart = "cart-storage"
)

// Repository stores opaque JSON documents by key. Load returns
// domain.ErrNotFound when nothing is stored under key; Delete of an absent key
// is not an error.
type Repository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
