package manifest

import (
	"context"
	"strconv"
	"strings"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

// Merge combines a base descriptor with a mod-loader overlay into one
// descriptor. Scalar fields follow override semantics (overlay wins when
// set); collection fields follow union semantics (base entries first,
// overlay entries combined in, never a wholesale replacement). Neither
// input is mutated.
func Merge(ctx context.Context, base, overlay *Descriptor) *Descriptor {
	logger := ctxlog.FromContext(ctx)

	merged := &Descriptor{
		ID:           base.ID,
		MainClass:    base.MainClass,
		Type:         base.Type,
		AssetIndex:   base.AssetIndex,
		Assets:       base.Assets,
		InheritsFrom: "",
	}
	if overlay.ID != "" {
		merged.ID = overlay.ID
	}
	if overlay.MainClass != "" {
		merged.MainClass = overlay.MainClass
	}
	if overlay.Type != "" {
		merged.Type = overlay.Type
	}
	if overlay.AssetIndex != nil {
		merged.AssetIndex = overlay.AssetIndex
	}
	if overlay.Assets != "" {
		merged.Assets = overlay.Assets
	}

	merged.Libraries = mergeLibraries(ctx, base.Libraries, overlay.Libraries)
	merged.Arguments = mergeArguments(base.Arguments, overlay.Arguments)
	merged.MinecraftArguments = mergeLegacyArguments(base.MinecraftArguments, overlay.MinecraftArguments)

	logger.Debug("Descriptors merged.",
		"base", base.ID, "overlay", overlay.ID,
		"libraries", len(merged.Libraries), "mainClass", merged.MainClass)
	return merged
}

// mergeLibraries unions two library lists keyed by group:artifact[:classifier],
// preserving base insertion order and appending new overlay keys in overlay
// order. On a key collision the overlay entry replaces the base entry, except
// for the log4j artifact family where the higher version wins regardless of
// which side carries it.
func mergeLibraries(ctx context.Context, base, overlay []Library) []Library {
	logger := ctxlog.FromContext(ctx)

	order := make([]string, 0, len(base)+len(overlay))
	byKey := make(map[string]Library, len(base)+len(overlay))

	for _, lib := range base {
		key := lib.key()
		if _, dup := byKey[key]; dup {
			// Duplicates inside a single descriptor are a data quality issue,
			// not a launch blocker. Last one wins, matching JSON readers that
			// fold duplicate keys.
			logger.Warn("Duplicate library inside base descriptor.", "key", key, "name", lib.Name)
			byKey[key] = lib
			continue
		}
		order = append(order, key)
		byKey[key] = lib
	}

	for _, lib := range overlay {
		key := lib.key()
		existing, collision := byKey[key]
		if !collision {
			order = append(order, key)
			byKey[key] = lib
			continue
		}

		winner := lib
		if isLog4jFamily(lib.Name) {
			// Shipping a downgraded log4j through an overlay reintroduces
			// known CVEs, so the version comparison overrides the usual
			// overlay-wins policy.
			if compareDottedVersions(libraryVersion(existing), libraryVersion(lib)) >= 0 {
				winner = existing
			}
		}
		if winner.Name != existing.Name {
			displaced, _ := ParseCoordinate(existing.Name)
			logger.Info("Overlay library displaced a base library.",
				"key", key,
				"group", displaced.Group, "artifact", displaced.Artifact,
				"version", displaced.Version, "classifier", displaced.Classifier,
				"replacement", winner.Name)
		}
		byKey[key] = winner
	}

	merged := make([]Library, 0, len(order))
	for _, key := range order {
		merged = append(merged, byKey[key])
	}
	return merged
}

// isLog4jFamily reports whether a coordinate belongs to the log4j artifact
// family, by group or by artifact-name prefix.
func isLog4jFamily(name string) bool {
	coord, err := ParseCoordinate(name)
	if err != nil {
		return false
	}
	return coord.Group == "org.apache.logging.log4j" || strings.HasPrefix(coord.Artifact, "log4j")
}

// libraryVersion extracts the version component of a library coordinate,
// empty when the coordinate does not parse.
func libraryVersion(l Library) string {
	coord, err := ParseCoordinate(l.Name)
	if err != nil {
		return ""
	}
	return coord.Version
}

// compareDottedVersions compares dot-separated versions component-wise as
// integers. Non-numeric and missing components compare as lower than any
// numeric one. Returns <0, 0, >0 in the usual comparator convention.
func compareDottedVersions(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	n := max(len(as), len(bs))
	for i := 0; i < n; i++ {
		av := versionComponent(as, i)
		bv := versionComponent(bs, i)
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

// versionComponent returns the i-th component as an integer, or -1 when the
// component is missing or not numeric.
func versionComponent(parts []string, i int) int {
	if i >= len(parts) {
		return -1
	}
	v, err := strconv.Atoi(parts[i])
	if err != nil {
		return -1
	}
	return v
}

// mergeArguments concatenates the structured jvm and game lists, base first,
// treating an absent list on either side as empty.
func mergeArguments(base, overlay *Arguments) *Arguments {
	if base == nil && overlay == nil {
		return nil
	}
	merged := &Arguments{}
	if base != nil {
		merged.JVM = append(merged.JVM, base.JVM...)
		merged.Game = append(merged.Game, base.Game...)
	}
	if overlay != nil {
		merged.JVM = append(merged.JVM, overlay.JVM...)
		merged.Game = append(merged.Game, overlay.Game...)
	}
	return merged
}

// legacyArgument is one parsed unit of a legacy minecraftArguments string:
// either a flag (optionally with a value) or a bare positional token.
type legacyArgument struct {
	flag     string
	value    string
	hasValue bool
}

// mergeLegacyArguments merges two legacy single-string argument formats. The
// strings are tokenized flag-aware: a token starting with "-" is a flag, and
// a following token that is not itself a flag is that flag's value; anything
// else is positional and kept in order. An overlay flag overwrites the value
// of a same-named base flag in place; new overlay flags and positionals
// append. Output is re-serialized space-joined in first-seen order.
//
// Naive fixed two-token chunking silently misaligns on odd token counts, so
// it is not used here.
func mergeLegacyArguments(base, overlay string) string {
	if base == "" && overlay == "" {
		return ""
	}

	var order []legacyArgument
	index := make(map[string]int)

	absorb := func(s string) {
		tokens := strings.Fields(s)
		for i := 0; i < len(tokens); i++ {
			tok := tokens[i]
			if !strings.HasPrefix(tok, "-") {
				order = append(order, legacyArgument{value: tok, hasValue: true})
				continue
			}
			arg := legacyArgument{flag: tok}
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], "-") {
				arg.value = tokens[i+1]
				arg.hasValue = true
				i++
			}
			if at, seen := index[tok]; seen {
				order[at] = arg
				continue
			}
			index[tok] = len(order)
			order = append(order, arg)
		}
	}
	absorb(base)
	absorb(overlay)

	var out []string
	for _, arg := range order {
		if arg.flag != "" {
			out = append(out, arg.flag)
		}
		if arg.hasValue {
			out = append(out, arg.value)
		}
	}
	return strings.Join(out, " ")
}
