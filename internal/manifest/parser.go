package manifest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

// Sentinel errors for descriptor loading. Callers distinguish a missing file
// from a malformed one with errors.Is.
var (
	ErrDescriptorNotFound = errors.New("version descriptor not found")
	ErrDescriptorParse    = errors.New("version descriptor is malformed")
)

// Parser loads version descriptors from an instance's versions directory,
// which lays out each version as <versionsDir>/<id>/<id>.json.
type Parser struct {
	versionsDir string
}

// NewParser creates a parser rooted at the given versions directory.
func NewParser(versionsDir string) *Parser {
	return &Parser{versionsDir: versionsDir}
}

// DescriptorPath returns the on-disk path of a version's JSON descriptor.
func (p *Parser) DescriptorPath(id string) string {
	return filepath.Join(p.versionsDir, id, id+".json")
}

// JarPath returns the on-disk path of a version's primary game archive.
func (p *Parser) JarPath(id string) string {
	return filepath.Join(p.versionsDir, id, id+".jar")
}

// Load reads and decodes a single version descriptor.
func (p *Parser) Load(ctx context.Context, id string) (*Descriptor, error) {
	logger := ctxlog.FromContext(ctx)
	path := p.DescriptorPath(id)
	logger.Debug("Loading version descriptor.", "id", id, "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q (%s)", ErrDescriptorNotFound, id, path)
		}
		return nil, fmt.Errorf("failed to read descriptor %q: %w", id, err)
	}

	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrDescriptorParse, id, err)
	}
	if desc.ID == "" {
		desc.ID = id
	}
	return &desc, nil
}

// LoadChain loads a descriptor and, when it declares inheritsFrom, its
// immediate parent from the same directory tree. Only one level is chased;
// the ecosystem does not nest overlays deeper than that. The pair is
// returned unmerged, parent first; the parent is nil when no inheritance is
// declared.
func (p *Parser) LoadChain(ctx context.Context, id string) (parent, child *Descriptor, err error) {
	child, err = p.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if child.InheritsFrom == "" {
		return nil, child, nil
	}

	ctxlog.FromContext(ctx).Debug("Descriptor inherits from a parent.",
		"id", id, "parent", child.InheritsFrom)
	parent, err = p.Load(ctx, child.InheritsFrom)
	if err != nil {
		return nil, nil, err
	}
	return parent, child, nil
}

// Resolve loads a version's descriptor chain and returns the merged result.
// Descriptors are loaded fresh on every call; nothing is cached across
// launch attempts.
func (p *Parser) Resolve(ctx context.Context, id string) (*Descriptor, error) {
	parent, child, err := p.LoadChain(ctx, id)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return child, nil
	}
	return Merge(ctx, parent, child), nil
}
