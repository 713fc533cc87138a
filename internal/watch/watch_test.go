package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPluginFor(t *testing.T) {
	t.Parallel()

	w := New("/repo/plugins", func([]string) {})

	tests := map[string]struct {
		path   string
		plugin string
		ok     bool
	}{
		"changelog": {
			path:   "/repo/plugins/greeter/CHANGELOG.md",
			plugin: "greeter",
			ok:     true,
		},
		"nested descriptor": {
			path:   "/repo/plugins/greeter/skills/hello/SKILL.md",
			plugin: "greeter",
			ok:     true,
		},
		"file directly under plugins dir": {
			path: "/repo/plugins/README.md",
			ok:   false,
		},
		"outside tree": {
			path: "/repo/other/CHANGELOG.md",
			ok:   false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			plugin, ok := w.pluginFor(tc.path)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.plugin, plugin)
		})
	}
}

func TestWatcher_ReportsChangedPlugin(t *testing.T) {
	root := t.TempDir()
	pluginDir := filepath.Join(root, "greeter")
	require.NoError(t, os.MkdirAll(pluginDir, 0o755))

	var mu sync.Mutex
	var got [][]string
	handler := func(plugins []string) {
		mu.Lock()
		got = append(got, plugins)
		mu.Unlock()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := New(root, handler, WithDebounce(50*time.Millisecond))
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register the tree.
	time.Sleep(100 * time.Millisecond)

	changelog := filepath.Join(pluginDir, "CHANGELOG.md")
	require.NoError(t, os.WriteFile(changelog, []byte("## [Unreleased]\n"), 0o644))
	// Irrelevant file, should not produce a second batch.
	require.NoError(t, os.WriteFile(filepath.Join(pluginDir, "notes.txt"), []byte("x"), 0o644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 3*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, [][]string{{"greeter"}}, got)
	mu.Unlock()

	cancel()
	require.NoError(t, <-done)
}
