package storage

import (
	"bytes"
	"fmt"
	"io"
)

// upload is a Put request after sniffing, validation and key resolution.
type upload struct {
	body        io.ReadSeeker
	rawKey      string
	key         string
	contentType string
	acl         ACL
	size        int64
}

// prepareUpload runs the backend independent part of Put. The body is
// seekable because the S3 client hashes the payload before sending it.
func prepareUpload(r io.Reader, size int64, defaultACL ACL, opts []Option) (*upload, error) {
	if r == nil {
		return nil, ErrEmptyFile
	}
	o := newPutOptions(defaultACL, opts)
	u := &upload{rawKey: o.key, contentType: o.contentType, acl: o.acl, size: size}

	if u.contentType == "" {
		u.contentType, u.body = detectWithReader(r)
	} else {
		body, err := seekable(r)
		if err != nil {
			return nil, err
		}
		u.body = body
	}

	if err := Validate(size, u.contentType, o.rules...); err != nil {
		return nil, err
	}

	key, err := resolveKey(o, u.contentType)
	if err != nil {
		return nil, err
	}
	u.key = key
	return u, nil
}

func seekable(r io.Reader) (io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		return rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read input: %w", err)
	}
	return bytes.NewReader(data), nil
}

func (u *upload) info(size int64) *FileInfo {
	return &FileInfo{Key: u.key, Size: size, ContentType: u.contentType, ACL: u.acl}
}
