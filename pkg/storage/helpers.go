package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
)

// PutFile stores an uploaded form file. The content type is sniffed from
// the bytes, never taken from the client, and validation rules run before
// the file is opened.
func PutFile(ctx context.Context, s Storage, fh *multipart.FileHeader, opts ...Option) (*FileInfo, error) {
	if fh == nil || fh.Size == 0 {
		return nil, ErrEmptyFile
	}

	o := newPutOptions("", opts)
	if o.contentType == "" {
		o.contentType = DetectMIME(fh)
		opts = append(opts, WithContentType(o.contentType))
	}
	if err := Validate(fh.Size, o.contentType, o.rules...); err != nil {
		return nil, err
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("storage: open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	return s.Put(ctx, f, fh.Size, opts...)
}

// PutBytes stores an in-memory buffer.
func PutBytes(ctx context.Context, s Storage, data []byte, opts ...Option) (*FileInfo, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFile
	}
	return s.Put(ctx, bytes.NewReader(data), int64(len(data)), opts...)
}
