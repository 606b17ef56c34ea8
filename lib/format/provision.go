package format

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDescriptors are the format descriptors provisioned on first
// start. All built-in Types wrap their items in an object root.
var DefaultDescriptors = map[string]Descriptor{
	"MarketProduct": {RootIsArray: false, ArrayKey: "products"},
	"StoreProduct":  {RootIsArray: false, ArrayKey: "products"},
	"News":          {RootIsArray: false, ArrayKey: "articles"},
	"User@Account":  {RootIsArray: false, ArrayKey: "Accounts"},
}

// Provision creates dir if needed and writes the default descriptor
// files. Existing files are left untouched so local edits survive a
// restart.
func Provision(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("format: creating formats directory %s: %w", dir, err)
	}

	for typeName, descriptor := range DefaultDescriptors {
		path := filepath.Join(dir, filePrefix+typeName+fileSuffix)
		if _, err := os.Stat(path); err == nil {
			continue
		}

		raw, err := json.Marshal(descriptor)
		if err != nil {
			return fmt.Errorf("format: encoding descriptor for %s: %w", typeName, err)
		}
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("format: writing format file %s: %w", path, err)
		}
	}

	return nil
}
