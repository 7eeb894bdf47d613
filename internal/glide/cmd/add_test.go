package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glidekit/glide-cli/internal/glide/config"
	"github.com/glidekit/glide-cli/internal/glide/manifest"
)

func TestIsURL(t *testing.T) {
	assert.True(t, isURL("https://registry.glidekit.dev/r/button.json"))
	assert.True(t, isURL("http://localhost:8080/r/button.json"))
	assert.False(t, isURL("button"))
	assert.False(t, isURL("ftp://example.com/button.json"))
	assert.False(t, isURL("registry.glidekit.dev/r/button.json"))
}

func TestComponentNameFromURL(t *testing.T) {
	testCases := []struct {
		url      string
		expected string
	}{
		{"https://registry.glidekit.dev/r/button.json", "button"},
		{"https://registry.glidekit.dev/r/data-table.json", "data-table"},
		{"https://registry.glidekit.dev/r/card", "card"},
		{"https://registry.glidekit.dev/", "https://registry.glidekit.dev/"},
	}
	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			assert.Equal(t, tc.expected, componentNameFromURL(tc.url))
		})
	}
}

func TestBuildManifestEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("plain name", func(t *testing.T) {
		entry := buildManifestEntry(ctx, "button")
		assert.Equal(t, manifest.Entry{
			Name:       "button",
			SourceType: manifest.SourceDirectName,
		}, entry)
	})

	t.Run("url with successful fetch", func(t *testing.T) {
		body := `{"name": "card", "type": "registry:ui"}`
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		}))
		defer srv.Close()

		entry := buildManifestEntry(ctx, srv.URL+"/card.json")
		assert.Equal(t, "card", entry.Name)
		assert.Equal(t, manifest.SourceURLSuccess, entry.SourceType)
		assert.Equal(t, srv.URL+"/card.json", entry.SourceURL)
		assert.JSONEq(t, body, string(entry.RegistryItem))
		assert.Empty(t, entry.FetchError)
	})

	t.Run("url with failed fetch degrades", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		entry := buildManifestEntry(ctx, srv.URL+"/card.json")
		assert.Equal(t, "card", entry.Name)
		assert.Equal(t, manifest.SourceURLFetchFailed, entry.SourceType)
		assert.Equal(t, srv.URL+"/card.json", entry.SourceURL)
		assert.Nil(t, entry.RegistryItem)
		assert.Contains(t, entry.FetchError, "status 500")
	})
}

func TestResolveManifestPath(t *testing.T) {
	t.Cleanup(func() { manifestPath = "" })

	t.Run("flag wins", func(t *testing.T) {
		manifestPath = "from-flag.json"
		cfg := &config.Config{ManifestPath: "from-config.json"}
		assert.Equal(t, "from-flag.json", resolveManifestPath(cfg))
	})

	t.Run("config next", func(t *testing.T) {
		manifestPath = ""
		cfg := &config.Config{ManifestPath: "from-config.json"}
		assert.Equal(t, "from-config.json", resolveManifestPath(cfg))
	})

	t.Run("default last", func(t *testing.T) {
		manifestPath = ""
		assert.Equal(t, config.DefaultManifestPath, resolveManifestPath(&config.Config{}))
	})

	t.Run("expands tilde and environment variables", func(t *testing.T) {
		home, err := os.UserHomeDir()
		require.NoError(t, err)

		manifestPath = "~/project/glide.manifest.json"
		assert.Equal(t, filepath.Join(home, "project", "glide.manifest.json"),
			resolveManifestPath(&config.Config{}))

		manifestPath = ""
		t.Setenv("GLIDE_TEST_PROJECT", "/opt/project")
		cfg := &config.Config{ManifestPath: "$GLIDE_TEST_PROJECT/glide.manifest.json"}
		assert.Equal(t, filepath.Join("/opt/project", "glide.manifest.json"),
			resolveManifestPath(cfg))
	})
}
