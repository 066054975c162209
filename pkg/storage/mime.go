package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MIMEOctetStream is returned when detection fails.
const MIMEOctetStream = "application/octet-stream"

// sniffBytes is the header length handed to the detector.
const sniffBytes = 3072

// extensions for types the detector does not know under these names.
var extraExtensions = map[string]string{
	"image/x-png":                   ".png",
	"image/pjpeg":                   ".jpg",
	"image/jpg":                     ".jpg",
	"audio/mpg":                     ".mp3",
	"audio/x-ms-wma":                ".wma",
	"audio/vnd.rn-realaudio":        ".ra",
	"video/x-ms-wmv":                ".wmv",
	"application/x-shockwave-flash": ".swf",
}

// DetectMIME detects the MIME type of a multipart file from its content.
// Returns MIMEOctetStream if detection fails.
func DetectMIME(fh *multipart.FileHeader) string {
	if fh == nil {
		return MIMEOctetStream
	}

	f, err := fh.Open()
	if err != nil {
		return MIMEOctetStream
	}
	defer f.Close()

	buf := make([]byte, sniffBytes)
	n, _ := io.ReadFull(f, buf)
	return detectBytes(buf[:n])
}

// DetectBytes detects the MIME type of data.
func DetectBytes(data []byte) string {
	return detectBytes(data)
}

// ExtFromMIME returns the file extension, with the leading dot, for a MIME type.
// Returns empty string if the MIME type is unknown.
func ExtFromMIME(mimeType string) string {
	mimeType = normalizeMIME(mimeType)
	if ext, ok := extraExtensions[mimeType]; ok {
		return ext
	}
	if m := mimetype.Lookup(mimeType); m != nil {
		return m.Extension()
	}
	return ""
}

// detectWithReader detects the MIME type of r and returns a seekable reader
// positioned at the start. AWS SDK v2 needs io.ReadSeeker to hash the payload;
// non-seekable input is buffered in memory.
func detectWithReader(r io.Reader) (string, io.ReadSeeker) {
	if rs, ok := r.(io.ReadSeeker); ok {
		buf := make([]byte, sniffBytes)
		n, _ := io.ReadFull(rs, buf)
		_, _ = rs.Seek(0, io.SeekStart)
		return detectBytes(buf[:n]), rs
	}

	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return MIMEOctetStream, bytes.NewReader(nil)
	}
	return detectBytes(data), bytes.NewReader(data)
}

func detectBytes(data []byte) string {
	if len(data) == 0 {
		return MIMEOctetStream
	}
	if len(data) > sniffBytes {
		data = data[:sniffBytes]
	}
	return normalizeMIME(mimetype.Detect(data).String())
}

// normalizeMIME extracts the base MIME type, removing parameters like charset.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// matchesMIME checks if a MIME type matches any of the allowed patterns.
// Supports wildcards like "image/*".
func matchesMIME(mimeType string, allowed []string) bool {
	mimeType = normalizeMIME(mimeType)
	if mimeType == "" {
		return false
	}

	for _, pattern := range allowed {
		pattern = strings.TrimSpace(strings.ToLower(pattern))

		if mimeType == pattern {
			return true
		}

		if prefix, ok := strings.CutSuffix(pattern, "*"); ok && strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(mimeType, prefix) {
				return true
			}
		}
	}

	return false
}
