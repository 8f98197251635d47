package interfaces

import "context"

// IFileStore keeps CAD attachments. The lifecycle only ever persists the
// returned handle next to the RFQ and never reads the content back. Delete
// discards a handle whose RFQ was never written.
type IFileStore interface {
	Store(ctx context.Context, data []byte, filename string) (handle string, err error)
	Delete(ctx context.Context, handle string) error
}
