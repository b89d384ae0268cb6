// Package instance models the launchable game installations a user has
// configured and the on-disk layout each one owns. Instances are declared in
// .hcl profile files inside the launcher directory.
package instance

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
	"github.com/yanquisalexander/launchcore/internal/fsutil"
)

// Instance describes one launchable installation: a base game version, an
// optional mod-loader overlay version, and the account it runs under.
type Instance struct {
	ID               string `hcl:"id,label"`
	Name             string `hcl:"name"`
	MinecraftVersion string `hcl:"minecraft_version"`
	OverlayVersion   string `hcl:"overlay_version,optional"`
	AccountUUID      string `hcl:"account,optional"`
	Directory        string `hcl:"directory"`
}

// profileFile is the top-level structure of one .hcl profile file.
type profileFile struct {
	Instances []*Instance `hcl:"instance,block"`
}

// Store holds every instance discovered in the profiles directory, keyed by
// id, preserving discovery order.
type Store struct {
	byID  map[string]*Instance
	order []string
}

// LoadStore discovers and decodes every .hcl profile under dir. Profile
// expressions may reference the home and launcher_dir variables, so
// directories can be written portably.
func LoadStore(ctx context.Context, dir string) (*Store, error) {
	logger := ctxlog.FromContext(ctx)

	files, err := fsutil.FindFilesByExtension(dir, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to scan profiles directory %q: %w", dir, err)
	}
	logger.Debug("Discovered instance profile files.", "dir", dir, "count", len(files))

	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":         cty.StringVal(home),
			"launcher_dir": cty.StringVal(dir),
		},
	}

	store := &Store{byID: make(map[string]*Instance)}
	parser := hclparse.NewParser()
	for _, path := range files {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse profile %q: %w", path, diags)
		}
		var profile profileFile
		if diags := gohcl.DecodeBody(file.Body, evalCtx, &profile); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode profile %q: %w", path, diags)
		}
		for _, inst := range profile.Instances {
			if _, dup := store.byID[inst.ID]; dup {
				return nil, fmt.Errorf("instance %q declared more than once (profile %q)", inst.ID, path)
			}
			store.byID[inst.ID] = inst
			store.order = append(store.order, inst.ID)
			logger.Debug("Instance profile loaded.", "id", inst.ID, "name", inst.Name)
		}
	}
	return store, nil
}

// Get returns the instance with the given id.
func (s *Store) Get(id string) (*Instance, bool) {
	inst, ok := s.byID[id]
	return inst, ok
}

// All returns every instance in discovery order.
func (s *Store) All() []*Instance {
	out := make([]*Instance, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}
