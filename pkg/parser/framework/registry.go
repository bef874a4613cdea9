package framework

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/specvital/typocheck/pkg/domain"
	"github.com/specvital/typocheck/pkg/parser/tspool"
)

type detection struct {
	pattern string
	def     *Definition
}

// Registry resolves file names to language definitions.
// When several definitions match a file, the last registered one wins,
// so specific definitions (Cargo.toml) are registered after generic ones (toml).
type Registry struct {
	mu          sync.RWMutex
	definitions []*Definition
	detections  []detection
	logger      *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		logger: slog.New(slog.DiscardHandler),
	}
}

// SetLogger sets the logger used to report skipped detection patterns.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if logger != nil {
		r.logger = logger
	}
}

// Register appends def to the registry. Invalid glob patterns are skipped.
// A Query definition whose pattern does not compile is not registered.
func (r *Registry) Register(def *Definition) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q, ok := def.Mode.(Query); ok {
		if err := tspool.CompileQuery(q.Language, q.Spec.Pattern); err != nil {
			r.logger.Warn("skipping language with invalid query", "language", def.Name, "error", err)
			return
		}
	}

	for _, pattern := range def.Detections {
		if !doublestar.ValidatePattern(pattern) {
			r.logger.Debug("skipping invalid detection pattern", "language", def.Name, "pattern", pattern)
			continue
		}
		r.detections = append(r.detections, detection{pattern: pattern, def: def})
	}
	r.definitions = append(r.definitions, def)
}

// Find returns the definition for filename, or nil if the file is not supported.
// Only the base name of filename is matched.
func (r *Registry) Find(filename string) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	base := filepath.Base(filename)
	for i := len(r.detections) - 1; i >= 0; i-- {
		d := r.detections[i]
		if matched, err := doublestar.Match(d.pattern, base); err == nil && matched {
			return d.def
		}
	}
	return nil
}

// FindByName returns the definition with the given name, or nil.
func (r *Registry) FindByName(name domain.Language) *Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, def := range r.definitions {
		if def.Name == name {
			return def
		}
	}
	return nil
}

// All returns the definitions in registration order.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Definition, len(r.definitions))
	copy(result, r.definitions)
	return result
}
