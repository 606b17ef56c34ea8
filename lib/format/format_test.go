package format

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptorValidate(t *testing.T) {
	assert.NoError(t, Descriptor{RootIsArray: true}.Validate())
	assert.NoError(t, Descriptor{RootIsArray: false, ArrayKey: "articles"}.Validate())
	assert.Error(t, Descriptor{RootIsArray: false}.Validate())
}

func TestDescriptorEmptyRoot(t *testing.T) {
	assert.Equal(t, []any{}, Descriptor{RootIsArray: true}.EmptyRoot())
	assert.Equal(t,
		map[string]any{"products": []any{}},
		Descriptor{ArrayKey: "products"}.EmptyRoot())
}

func TestProvision(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "formats")
	require.NoError(t, Provision(dir))

	for typeName := range DefaultDescriptors {
		_, err := os.Stat(filepath.Join(dir, "F_"+typeName+".json"))
		assert.NoError(t, err, "descriptor for %s must be provisioned", typeName)
	}

	// A locally edited descriptor survives re-provisioning
	edited := []byte(`{"root_is_array": true}`)
	path := filepath.Join(dir, "F_News.json")
	require.NoError(t, os.WriteFile(path, edited, 0o644))
	require.NoError(t, Provision(dir))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, edited, raw)
}

func TestLoadRegistry(t *testing.T) {
	dir := t.TempDir()

	// Descriptor files are hand-editable, so comments and trailing
	// commas must parse
	writeFile(t, dir, "F_News.json", `{
		// items live under the articles field
		"root_is_array": false,
		"array_key": "articles",
	}`)
	writeFile(t, dir, "F_Tags.json", `{"root_is_array": true}`)

	// Files outside the F_<Type>.json naming scheme are ignored
	writeFile(t, dir, "README.md", "not a descriptor")
	writeFile(t, dir, "F_.json", `{"root_is_array": true}`)
	writeFile(t, dir, "News.json", `{"root_is_array": true}`)

	registry, err := LoadRegistry(dir)
	require.NoError(t, err)

	news, ok := registry.Resolve("News")
	require.True(t, ok)
	assert.Equal(t, Descriptor{RootIsArray: false, ArrayKey: "articles"}, news)

	tags, ok := registry.Resolve("Tags")
	require.True(t, ok)
	assert.True(t, tags.RootIsArray)

	_, ok = registry.Resolve("Recipes")
	assert.False(t, ok)

	assert.ElementsMatch(t, []string{"News", "Tags"}, registry.Types())
}

func TestLoadRegistryRejectsBadDescriptors(t *testing.T) {
	t.Run("unparsable file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "F_Broken.json", `{"root_is_array":`)

		_, err := LoadRegistry(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "F_Broken.json")
	})

	t.Run("object root without array key", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "F_Invalid.json", `{"root_is_array": false}`)

		_, err := LoadRegistry(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "array_key")
	})

	t.Run("missing directory", func(t *testing.T) {
		_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})
}

func TestProvisionedDefaultsLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Provision(dir))

	registry, err := LoadRegistry(dir)
	require.NoError(t, err)

	account, ok := registry.Resolve("User@Account")
	require.True(t, ok)
	assert.Equal(t, "Accounts", account.ArrayKey)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
