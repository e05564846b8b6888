package storage

import (
	"context"
	"errors"
	"fmt"

	"ems/internal/platform/crypto"
)

// ErrUnreadable means a stored value exists but cannot be decrypted.
var ErrUnreadable = errors.New("stored value cannot be decrypted")

// Sealed encrypts every value before it reaches the wrapped backend.
type Sealed struct {
	inner  Storage
	sealer *crypto.Sealer
}

func NewSealed(inner Storage, sealer *crypto.Sealer) *Sealed {
	return &Sealed{inner: inner, sealer: sealer}
}

func (s *Sealed) Get(ctx context.Context, keys ...string) (map[string]string, error) {
	values, err := s.inner.Get(ctx, keys...)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(values))
	for key, sealed := range values {
		plain, err := s.sealer.Open(sealed)
		if err != nil {
			return nil, fmt.Errorf("%w: key %s", ErrUnreadable, key)
		}
		out[key] = plain
	}
	return out, nil
}

func (s *Sealed) SetAll(ctx context.Context, values map[string]string) error {
	sealed := make(map[string]string, len(values))
	for key, plain := range values {
		v, err := s.sealer.Seal(plain)
		if err != nil {
			return fmt.Errorf("seal %s: %w", key, err)
		}
		sealed[key] = v
	}
	return s.inner.SetAll(ctx, sealed)
}

func (s *Sealed) Delete(ctx context.Context, keys ...string) error {
	return s.inner.Delete(ctx, keys...)
}

func (s *Sealed) Close() error {
	return s.inner.Close()
}
