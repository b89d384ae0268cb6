// Package classpath turns a merged descriptor's library list into an
// ordered, deduplicated, OS-correct classpath string.
package classpath

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
	"github.com/yanquisalexander/launchcore/internal/manifest"
	"github.com/yanquisalexander/launchcore/internal/platform"
	"github.com/yanquisalexander/launchcore/internal/rules"
)

// Resolver builds classpaths for one platform. The platform is injected so
// tests can resolve classifiers for platforms other than the host.
type Resolver struct {
	LibrariesDir string
	Platform     platform.Platform
	// Separator joins entries; empty means the host's path-list separator.
	Separator string
}

// NewResolver creates a resolver for the host platform.
func NewResolver(librariesDir string) *Resolver {
	return &Resolver{
		LibrariesDir: librariesDir,
		Platform:     platform.Current(),
		Separator:    platform.ListSeparator(),
	}
}

// Build resolves the classpath for a merged descriptor and joins it with the
// platform path-list separator. gameJars lists primary game archive
// candidates in priority order (overlay jar before base jar); the first one
// present on disk is used and the rest are skipped, since an overlay's own
// jar supersedes the unmerged base-game jar. Building is a pure function of
// its inputs and the filesystem: re-running on the same state yields an
// identical string.
func (r *Resolver) Build(ctx context.Context, desc *manifest.Descriptor, gameJars []string) string {
	sep := r.Separator
	if sep == "" {
		sep = platform.ListSeparator()
	}
	return strings.Join(r.Paths(ctx, desc, gameJars), sep)
}

// Paths returns the resolved classpath entries in order, deduplicated by
// absolute path with the first occurrence winning.
func (r *Resolver) Paths(ctx context.Context, desc *manifest.Descriptor, gameJars []string) []string {
	logger := ctxlog.FromContext(ctx)

	var entries []string
	seen := make(map[string]bool)
	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		if seen[abs] {
			return
		}
		seen[abs] = true
		entries = append(entries, abs)
	}

	primaryFound := false
	for _, jar := range gameJars {
		if jar == "" {
			continue
		}
		if primaryFound {
			logger.Debug("Skipping superseded game jar.", "path", jar)
			continue
		}
		if _, err := os.Stat(jar); err != nil {
			logger.Warn("Game jar not found, trying next candidate.", "path", jar)
			continue
		}
		add(jar)
		primaryFound = true
	}
	if !primaryFound {
		logger.Warn("No primary game jar found on disk.", "candidates", len(gameJars))
	}

	for _, lib := range desc.Libraries {
		// Library rules are evaluated with no feature context; feature flags
		// only ever gate game arguments.
		if !rules.ShouldInclude(lib.Rules, r.Platform, nil) {
			logger.Debug("Library excluded by rules.", "name", lib.Name)
			continue
		}

		if lib.Natives != nil {
			path, ok := r.nativePath(ctx, lib)
			if !ok {
				continue
			}
			add(path)
			continue
		}

		path, ok := r.artifactPath(lib)
		if !ok {
			logger.Warn("Library has no resolvable path.", "name", lib.Name)
			continue
		}
		if _, err := os.Stat(path); err != nil {
			// Many libraries are OS or arch conditional and legitimately
			// absent; missing files are skipped, never fetched here.
			logger.Warn("Library file missing, omitting from classpath.", "name", lib.Name, "path", path)
			continue
		}
		add(path)
	}

	return entries
}

// artifactPath resolves a non-native library file path, preferring the
// descriptor's explicit relative path over the coordinate-derived one.
func (r *Resolver) artifactPath(lib manifest.Library) (string, bool) {
	if lib.Downloads != nil && lib.Downloads.Artifact != nil && lib.Downloads.Artifact.Path != "" {
		return filepath.Join(r.LibrariesDir, filepath.FromSlash(lib.Downloads.Artifact.Path)), true
	}
	coord, err := manifest.ParseCoordinate(lib.Name)
	if err != nil {
		return "", false
	}
	return filepath.Join(r.LibrariesDir, coord.Path()), true
}

// nativePath resolves the native-classifier artifact for the current
// platform: the exact OS+arch classifier first, then the generic OS-only
// one. Returns false, with a warning, when no classifier resolves to an
// existing file.
func (r *Resolver) nativePath(ctx context.Context, lib manifest.Library) (string, bool) {
	logger := ctxlog.FromContext(ctx)

	var candidates []string
	if id, ok := lib.Natives[r.Platform.OS]; ok {
		candidates = append(candidates, strings.ReplaceAll(id, "${arch}", r.Platform.Arch))
	}
	candidates = append(candidates,
		"natives-"+r.Platform.OS+"-"+r.Platform.Arch,
		"natives-"+r.Platform.OS,
	)

	classifiers := map[string]manifest.Artifact{}
	if lib.Downloads != nil {
		classifiers = lib.Downloads.Classifiers
	}

	for _, id := range candidates {
		artifact, ok := classifiers[id]
		var path string
		switch {
		case ok && artifact.Path != "":
			path = filepath.Join(r.LibrariesDir, filepath.FromSlash(artifact.Path))
		default:
			coord, err := manifest.ParseCoordinate(lib.Name)
			if err != nil {
				continue
			}
			coord.Classifier = id
			path = filepath.Join(r.LibrariesDir, coord.Path())
		}
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	logger.Warn("No native classifier resolved to an existing file.",
		"name", lib.Name, "os", r.Platform.OS, "arch", r.Platform.Arch)
	return "", false
}
