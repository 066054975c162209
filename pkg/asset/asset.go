package asset

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/assetkit/pkg/sanitizer"
)

// Asset is an uploaded file record.
type Asset struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CreatedBy   *uuid.UUID
	UpdatedBy   *uuid.UUID
	Title       string
	Caption     string
	FileName    string
	ContentType string
	FileSize    int64
	ID          uuid.UUID
	// Furniture marks site layout images that generic listings hide.
	Furniture bool
}

// Classifier maps content types to asset types.
type Classifier interface {
	Is(name, mimeType string) bool
	Classify(mimeType string) string
}

// New creates an asset for an uploaded file name with a fresh ID.
func New(fileName string) *Asset {
	now := time.Now().UTC()
	return &Asset{
		ID:        uuid.New(),
		FileName:  fileName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Basename returns the file name without directory and last extension.
func (a *Asset) Basename() string {
	name := baseName(a.FileName)
	if name == "" {
		return ""
	}
	if trimmed := strings.TrimSuffix(name, path.Ext(name)); trimmed != "" {
		return trimmed
	}
	return name
}

// Extension returns the lowercased part after the last dot, or an empty
// string when the file name has none.
func (a *Asset) Extension() string {
	name := baseName(a.FileName)
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// AssignTitle sets the title to the basename when it is blank.
func (a *Asset) AssignTitle() {
	if strings.TrimSpace(a.Title) == "" {
		a.Title = sanitizer.Title(a.Basename())
	}
}

// Sanitize cleans user supplied title and caption.
func (a *Asset) Sanitize() {
	a.Title = sanitizer.Title(a.Title)
	a.Caption = sanitizer.Caption(a.Caption)
}

// Type returns the asset type of the stored content type.
func (a *Asset) Type(c Classifier) string {
	return c.Classify(a.ContentType)
}

// Is reports whether the asset belongs to the named type.
func (a *Asset) Is(c Classifier, name string) bool {
	return c.Is(name, a.ContentType)
}

// baseName strips directories from upload names, including Windows ones.
func baseName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")
	if name == "" {
		return ""
	}
	base := path.Base(name)
	if base == "/" || base == "." {
		return ""
	}
	return base
}
