package format

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/tailscale/hujson"
)

const (
	// descriptor files are named F_<Type>.json
	filePrefix = "F_"
	fileSuffix = ".json"
)

// Registry holds the Type name to Descriptor mapping. It is populated
// once at startup and read-only thereafter, so it is safe to share
// across any number of concurrent operations.
type Registry struct {
	formats *xsync.MapOf[string, Descriptor]
}

// Resolve returns the descriptor registered for the given Type name.
// The boolean return value indicates whether the Type is known.
func (r *Registry) Resolve(typeName string) (Descriptor, bool) {
	return r.formats.Load(typeName)
}

// Types returns the names of all registered Types.
func (r *Registry) Types() []string {
	var names []string
	r.formats.Range(func(name string, _ Descriptor) bool {
		names = append(names, name)
		return true
	})
	return names
}

// LoadRegistry reads every F_<Type>.json file in dir and builds the
// registry. Descriptor files may carry comments and trailing commas
// (they are hand-editable); an unparsable or invalid descriptor is a
// startup error, not something to serve requests on top of.
func LoadRegistry(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("format: reading formats directory %s: %w", dir, err)
	}

	registry := &Registry{formats: xsync.NewMapOf[string, Descriptor]()}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
			continue
		}
		typeName := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
		if typeName == "" {
			continue
		}

		descriptor, err := loadDescriptorFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		registry.formats.Store(typeName, descriptor)
	}

	return registry, nil
}

// loadDescriptorFile parses a single descriptor file
func loadDescriptorFile(path string) (Descriptor, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Descriptor{}, fmt.Errorf("format: reading format file %s: %w", path, err)
	}

	// Standardize strips comments and trailing commas so plain
	// encoding/json can take over.
	standardized, err := hujson.Standardize(raw)
	if err != nil {
		return Descriptor{}, fmt.Errorf("format: parsing format file %s: %w", path, err)
	}

	var descriptor Descriptor
	if err := json.Unmarshal(standardized, &descriptor); err != nil {
		return Descriptor{}, fmt.Errorf("format: parsing format file %s: %w", path, err)
	}
	if err := descriptor.Validate(); err != nil {
		return Descriptor{}, fmt.Errorf("format: format file %s: %w", path, err)
	}

	return descriptor, nil
}
