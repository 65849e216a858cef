package interfaces

import "context"

// IFileStorage abstracts raw document storage. Store returns the generated
// opaque name under which the bytes were saved; the user-supplied filename is
// never used as a storage key.

type IFileStorage interface {
	Store(ctx context.Context, data []byte, originalName string) (storedName string, err error)
	Load(ctx context.Context, storedName string) ([]byte, error)
	Delete(ctx context.Context, storedName string) error
}
