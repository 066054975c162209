package assettype

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/dmitrymomot/assetkit/pkg/logger"
)

// Built-in type names.
const (
	Image = "image"
	Video = "video"
	Audio = "audio"
	SWF   = "swf"
	PDF   = "pdf"
	Movie = "movie"
	Other = "other"
)

// Registry holds the known asset types in registration order.
//
// Registrations are expected to complete during startup, before the first
// classification. Reads are safe for concurrent use.
type Registry struct {
	index      map[string]*typeDef
	logger     *slog.Logger
	column     string
	types      []*typeDef
	mediaTypes []string
	mu         sync.RWMutex
}

// typeDef is either a plain type with its own MIME set or an alias whose
// set is the union of its bases, resolved on every read.
type typeDef struct {
	name  string
	mimes []string
	bases []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithColumn sets the column used by filter conditions.
// Defaults to DefaultColumn.
func WithColumn(column string) Option {
	return func(r *Registry) {
		if column != "" {
			r.column = column
		}
	}
}

// WithMediaTypes sets the types whose MIME sets are excluded from "other".
// Defaults to image, audio and movie.
func WithMediaTypes(names ...string) Option {
	return func(r *Registry) {
		r.mediaTypes = slices.Clone(names)
	}
}

// WithLogger sets the logger used to report overrides.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// RegisterOption configures a single registration.
type RegisterOption func(*registerOptions)

type registerOptions struct {
	override bool
}

// WithOverride allows replacing the MIME set of an already registered type.
// The type keeps its position in classification order.
func WithOverride() RegisterOption {
	return func(o *registerOptions) {
		o.override = true
	}
}

// New creates an empty registry. Only "other" is known.
func New(opts ...Option) *Registry {
	r := &Registry{
		index:      make(map[string]*typeDef),
		column:     DefaultColumn,
		mediaTypes: []string{Image, Audio, Movie},
		logger:     logger.NewNope(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewDefault creates a registry with the built-in types registered.
func NewDefault(opts ...Option) *Registry {
	r := New(opts...)
	if err := RegisterBuiltins(r); err != nil {
		// A fresh registry accepts every built-in.
		panic(err)
	}
	return r
}

// RegisterBuiltins registers image, video, audio, swf, pdf and the movie
// alias, in that order.
func RegisterBuiltins(r *Registry) error {
	for _, t := range builtins {
		if err := r.Register(t.name, t.mimes); err != nil {
			return err
		}
	}
	return r.RegisterAlias(Movie, SWF, Video)
}

var builtins = []struct {
	name  string
	mimes []string
}{
	{Image, []string{"image/png", "image/x-png", "image/jpeg", "image/pjpeg", "image/jpg", "image/gif"}},
	{Video, []string{"video/mpeg", "video/mp4", "video/ogg", "video/quicktime", "video/x-ms-wmv", "video/x-flv"}},
	{Audio, []string{"audio/mpeg", "audio/mpg", "audio/ogg", "application/ogg", "audio/x-ms-wma", "audio/vnd.rn-realaudio", "audio/x-wav"}},
	{SWF, []string{"application/x-shockwave-flash"}},
	{PDF, []string{"application/pdf"}},
}

// Register adds a type with its MIME types. The first MIME type is the
// canonical one.
//
// Registering the same name with the same set is a no-op. A different set
// returns *DuplicateTypeError unless WithOverride is given.
func (r *Registry) Register(name string, mimes []string, opts ...RegisterOption) error {
	mimes = normalizeAll(mimes)
	if name == "" || len(mimes) == 0 {
		return ErrInvalidType
	}
	if name == Other {
		return ErrReservedType
	}

	o := &registerOptions{}
	for _, opt := range opts {
		opt(o)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.index[name]
	if !ok {
		def := &typeDef{name: name, mimes: mimes}
		r.index[name] = def
		r.types = append(r.types, def)
		return nil
	}

	current := r.resolve(existing, nil)
	if existing.bases == nil && sameSet(current, mimes) {
		return nil
	}
	if !o.override {
		return &DuplicateTypeError{Name: name, Existing: current, Requested: mimes}
	}

	existing.mimes = mimes
	existing.bases = nil
	r.logger.Info("asset type overridden",
		slog.String("type", name),
		slog.Any("mime_types", mimes),
	)
	return nil
}

// RegisterAlias adds a composite type whose MIME set is the union of the
// given base types. The union is recomputed on every read, so overriding a
// base type changes the alias as well.
func (r *Registry) RegisterAlias(name string, bases ...string) error {
	if name == "" || len(bases) == 0 {
		return ErrInvalidType
	}
	if name == Other {
		return ErrReservedType
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range bases {
		if b == name {
			return ErrAliasCycle
		}
		base, ok := r.index[b]
		if !ok {
			return ErrUnknownType
		}
		if r.dependsOn(base, name, nil) {
			return ErrAliasCycle
		}
	}

	if existing, ok := r.index[name]; ok {
		if slices.Equal(existing.bases, bases) {
			return nil
		}
		return &DuplicateTypeError{
			Name:      name,
			Existing:  r.resolve(existing, nil),
			Requested: r.union(bases, nil),
		}
	}

	def := &typeDef{name: name, bases: slices.Clone(bases)}
	r.index[name] = def
	r.types = append(r.types, def)
	return nil
}

// Known reports whether name is a registered type or "other".
func (r *Registry) Known(name string) bool {
	if name == Other {
		return true
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[name]
	return ok
}

// KnownTypes returns the type names in registration order, with "other" last.
func (r *Registry) KnownTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types)+1)
	for _, t := range r.types {
		names = append(names, t.name)
	}
	return append(names, Other)
}

// MIMETypes returns the MIME set of a type, canonical type first.
// Aliases return the union of their bases. "other" and unknown names return nil.
func (r *Registry) MIMETypes(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.index[name]
	if !ok {
		return nil
	}
	return r.resolve(def, nil)
}

// Is reports whether mimeType belongs to the named type.
// For "other" it reports whether mimeType is outside the media types.
func (r *Registry) Is(name, mimeType string) bool {
	mimeType = Normalize(mimeType)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == Other {
		return !slices.Contains(r.mediaMIMETypes(), mimeType)
	}
	def, ok := r.index[name]
	if !ok {
		return false
	}
	return slices.Contains(r.resolve(def, nil), mimeType)
}

// Matcher returns a predicate bound to the named type.
func (r *Registry) Matcher(name string) func(mimeType string) bool {
	return func(mimeType string) bool {
		return r.Is(name, mimeType)
	}
}

// Classify returns the first registered type containing mimeType, or
// "other". It never fails: empty and malformed input classify as "other".
func (r *Registry) Classify(mimeType string) string {
	mimeType = Normalize(mimeType)
	if mimeType == "" {
		return Other
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.types {
		if slices.Contains(r.resolve(def, nil), mimeType) {
			return def.name
		}
	}
	return Other
}

// Condition returns a filter selecting records of the named type.
func (r *Registry) Condition(name string) (Condition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == Other {
		return NotIn(r.column, r.mediaMIMETypes()), nil
	}
	def, ok := r.index[name]
	if !ok {
		return Condition{}, ErrUnknownType
	}
	return In(r.column, r.resolve(def, nil)), nil
}

// NotCondition returns the complement of Condition.
func (r *Registry) NotCondition(name string) (Condition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == Other {
		return In(r.column, r.mediaMIMETypes()), nil
	}
	def, ok := r.index[name]
	if !ok {
		return Condition{}, ErrUnknownType
	}
	return NotIn(r.column, r.resolve(def, nil)), nil
}

// TypesCondition ORs the conditions of several types.
// No names yields the zero condition.
func (r *Registry) TypesCondition(names ...string) (Condition, error) {
	conds := make([]Condition, 0, len(names))
	for _, name := range names {
		c, err := r.Condition(name)
		if err != nil {
			return Condition{}, err
		}
		conds = append(conds, c)
	}
	return Or(conds...), nil
}

// Column returns the column used by filter conditions.
func (r *Registry) Column() string {
	return r.column
}

// mediaMIMETypes is the union of the media types. Caller must hold the lock.
func (r *Registry) mediaMIMETypes() []string {
	return r.union(r.mediaTypes, nil)
}

// resolve returns a copy of the MIME set of def. Caller must hold the lock.
func (r *Registry) resolve(def *typeDef, seen map[string]bool) []string {
	if def.bases == nil {
		return slices.Clone(def.mimes)
	}
	if seen == nil {
		seen = make(map[string]bool)
	}
	if seen[def.name] {
		return nil
	}
	seen[def.name] = true
	return r.union(def.bases, seen)
}

// union merges the MIME sets of names, keeping first-seen order.
// Unknown names contribute nothing. Caller must hold the lock.
func (r *Registry) union(names []string, seen map[string]bool) []string {
	var out []string
	for _, n := range names {
		def, ok := r.index[n]
		if !ok {
			continue
		}
		out = append(out, r.resolve(def, seen)...)
	}
	return normalizeAll(out)
}

// dependsOn reports whether def resolves through target. Caller must hold the lock.
func (r *Registry) dependsOn(def *typeDef, target string, seen map[string]bool) bool {
	if seen == nil {
		seen = make(map[string]bool)
	}
	if seen[def.name] {
		return false
	}
	seen[def.name] = true
	for _, b := range def.bases {
		if b == target {
			return true
		}
		if base, ok := r.index[b]; ok && r.dependsOn(base, target, seen) {
			return true
		}
	}
	return false
}
