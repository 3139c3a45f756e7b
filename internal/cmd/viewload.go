package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jcraft-dev/jcraft/internal/bcview"
	"github.com/jcraft-dev/jcraft/internal/bcview/javasrcview"
	"github.com/jcraft-dev/jcraft/internal/bcview/manifest"
	"github.com/jcraft-dev/jcraft/internal/cache"
	"github.com/jcraft-dev/jcraft/internal/jarfetch"
)

// loadViewOpts gathers the ways a bytecode view can be produced from the
// command line. Real .jar classfiles aren't parsed here: loading them is
// the bytecode view's own concern, external to jcraft's core per its
// design (see DESIGN.md). manifestPath and srcDir are jcraft's two
// concrete View sources; jars and jarURLs only feed the compile-check
// classpath and the view cache hash. jarURLs are resolved to local paths
// via jarfetch before loadView touches the cache or buildView runs.
type loadViewOpts struct {
	manifestPath string
	srcDir       string
	jars         []string // classpath entries for compile-check, not view sources
	jarURLs      []string // fetched into local jars before loadView proceeds
	cacheDir     string   // empty disables the sqlite view cache and jar download cache
}

func loadView(opts loadViewOpts) (bcview.View, error) {
	if len(opts.jarURLs) > 0 {
		destDir := opts.cacheDir
		if destDir != "" {
			destDir = filepath.Join(destDir, "jars")
		} else {
			var err error
			destDir, err = os.MkdirTemp("", "jcraft-jars-")
			if err != nil {
				return nil, fmt.Errorf("create jar download dir: %w", err)
			}
		}
		fetched, err := jarfetch.Fetch(context.Background(), opts.jarURLs, destDir)
		if err != nil {
			return nil, fmt.Errorf("fetch jar urls: %w", err)
		}
		opts.jars = append(opts.jars, fetched...)
	}

	hash := cache.JarsetHash(append([]string{opts.manifestPath, opts.srcDir}, opts.jars...))

	var c *cache.Cache
	if opts.cacheDir != "" {
		var err error
		c, err = cache.Open(opts.cacheDir)
		if err != nil {
			return nil, fmt.Errorf("open view cache: %w", err)
		}
		defer c.Close()

		if v, found, err := c.LoadView(hash); err != nil {
			return nil, fmt.Errorf("read view cache: %w", err)
		} else if found {
			return v, nil
		}
	}

	view, err := buildView(opts)
	if err != nil {
		return nil, err
	}

	if c != nil {
		if err := c.SaveView(hash, view); err != nil {
			return nil, fmt.Errorf("write view cache: %w", err)
		}
	}

	return view, nil
}

func buildView(opts loadViewOpts) (bcview.View, error) {
	switch {
	case opts.manifestPath != "":
		v, err := manifest.Load(opts.manifestPath)
		if err != nil {
			return nil, fmt.Errorf("load manifest %s: %w", opts.manifestPath, err)
		}
		return v, nil
	case opts.srcDir != "":
		v, err := javasrcview.Load(opts.srcDir)
		if err != nil {
			return nil, fmt.Errorf("load sources %s: %w", opts.srcDir, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("no view source given: pass --manifest or --src")
	}
}
