package webstyle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestWatchRebuildsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	prev := WatchDebounce
	WatchDebounce = 20 * time.Millisecond
	defer func() { WatchDebounce = prev }()

	src := t.TempDir()
	out := filepath.Join(src, "build")
	writeProject(t, src, "aurora", auroraManifest, auroraFragments())

	builds := make(chan *BuildResult, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Config{SourceDir: src, OutputDir: out}, func(res *BuildResult, err error) {
			assert.NoError(t, err)
			builds <- res
		})
	}()

	waitBuild := func() *BuildResult {
		t.Helper()
		select {
		case res := <-builds:
			return res
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for build")
			return nil
		}
	}

	first := waitBuild()
	require.Len(t, first.Projects, 1)

	writeFile(t, filepath.Join(src, "aurora", "extra.css"), ".extra { color: red; }")

	// A create and a write may land in separate debounce windows.
	var data []byte
	for !strings.Contains(string(data), ".extra { color: red; }") {
		res := waitBuild()
		require.Len(t, res.Projects, 1)
		assert.Equal(t, 3, res.Projects[0].Fragments)

		var err error
		data, err = os.ReadFile(filepath.Join(out, "aurora.webstyle_framework.css"))
		require.NoError(t, err)
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestWatchMissingSource(t *testing.T) {
	defer goleak.VerifyNone(t)

	err := Watch(context.Background(), Config{
		SourceDir: filepath.Join(t.TempDir(), "nope"),
		OutputDir: t.TempDir(),
	}, func(*BuildResult, error) {
		t.Fatal("no build expected")
	})
	require.Error(t, err)
}
