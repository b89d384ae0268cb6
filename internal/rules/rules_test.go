package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanquisalexander/launchcore/internal/platform"
)

var (
	linuxX64   = platform.Platform{OS: "linux", Arch: "x64"}
	windowsX64 = platform.Platform{OS: "windows", Arch: "x64"}
	osxArm64   = platform.Platform{OS: "osx", Arch: "arm64"}
)

func TestApplies_ActionOnly(t *testing.T) {
	assert.True(t, Rule{Action: ActionAllow}.Applies(linuxX64, nil))
	assert.False(t, Rule{Action: ActionDisallow}.Applies(linuxX64, nil))

	// A missing action defaults to allow.
	assert.True(t, Rule{}.Applies(linuxX64, nil))
}

func TestApplies_OSClause(t *testing.T) {
	t.Run("allow with matching os", func(t *testing.T) {
		rule := Rule{Action: ActionAllow, OS: &OSMatcher{Name: "linux"}}
		assert.True(t, rule.Applies(linuxX64, nil))
		assert.False(t, rule.Applies(windowsX64, nil))
	})

	t.Run("disallow inverts the os match", func(t *testing.T) {
		rule := Rule{Action: ActionDisallow, OS: &OSMatcher{Name: "osx"}}
		assert.True(t, rule.Applies(linuxX64, nil))
		assert.False(t, rule.Applies(osxArm64, nil))
	})

	t.Run("arch narrows the match", func(t *testing.T) {
		rule := Rule{Action: ActionAllow, OS: &OSMatcher{Name: "osx", Arch: "arm64"}}
		assert.True(t, rule.Applies(osxArm64, nil))
		assert.False(t, rule.Applies(platform.Platform{OS: "osx", Arch: "x64"}, nil))
	})

	t.Run("empty sub-clauses match anything", func(t *testing.T) {
		rule := Rule{Action: ActionAllow, OS: &OSMatcher{}}
		assert.True(t, rule.Applies(linuxX64, nil))
		assert.True(t, rule.Applies(windowsX64, nil))
	})
}

func TestApplies_FeatureClause(t *testing.T) {
	demoRule := Rule{Action: ActionAllow, Features: map[string]bool{"is_demo_user": true}}

	t.Run("no feature map at all fails the clause", func(t *testing.T) {
		assert.False(t, demoRule.Applies(linuxX64, nil))
	})

	t.Run("missing key counts as false", func(t *testing.T) {
		assert.False(t, demoRule.Applies(linuxX64, map[string]bool{}))
	})

	t.Run("matching feature keeps the allow result", func(t *testing.T) {
		assert.True(t, demoRule.Applies(linuxX64, map[string]bool{"is_demo_user": true}))
	})

	t.Run("mismatch flips a disallow rule to true", func(t *testing.T) {
		rule := Rule{Action: ActionDisallow, Features: map[string]bool{"is_demo_user": true}}
		assert.True(t, rule.Applies(linuxX64, map[string]bool{"is_demo_user": false}))
	})
}

// TestApplies_FeatureAsymmetry pins the documented quirk: a feature match
// never upgrades a result the OS clause already set to false.
func TestApplies_FeatureAsymmetry(t *testing.T) {
	rule := Rule{
		Action:   ActionAllow,
		OS:       &OSMatcher{Name: "windows"},
		Features: map[string]bool{"has_custom_resolution": true},
	}
	features := map[string]bool{"has_custom_resolution": true}

	// OS rejects on linux; the feature match must not resurrect the rule.
	assert.False(t, rule.Applies(linuxX64, features))
	// On windows the OS clause passes and the feature match preserves it.
	assert.True(t, rule.Applies(windowsX64, features))
	// A feature mismatch still downgrades an OS-accepted result.
	assert.False(t, rule.Applies(windowsX64, map[string]bool{"has_custom_resolution": false}))
}

func TestShouldInclude(t *testing.T) {
	t.Run("no rules includes unconditionally", func(t *testing.T) {
		assert.True(t, ShouldInclude(nil, linuxX64, nil))
		assert.True(t, ShouldInclude([]Rule{}, linuxX64, nil))
	})

	t.Run("any passing rule includes", func(t *testing.T) {
		list := []Rule{
			{Action: ActionAllow, OS: &OSMatcher{Name: "windows"}},
			{Action: ActionAllow, OS: &OSMatcher{Name: "linux"}},
		}
		assert.True(t, ShouldInclude(list, linuxX64, nil))
		assert.True(t, ShouldInclude(list, windowsX64, nil))
		assert.False(t, ShouldInclude(list, osxArm64, nil))
	})

	t.Run("classic allow-all-except-osx pattern", func(t *testing.T) {
		list := []Rule{
			{Action: ActionAllow},
			{Action: ActionDisallow, OS: &OSMatcher{Name: "osx"}},
		}
		// The first rule passes everywhere, so the OR includes even on osx.
		// This is how the evaluation is specified; exclusion lists rely on
		// every rule failing.
		assert.True(t, ShouldInclude(list, linuxX64, nil))
		assert.True(t, ShouldInclude(list, osxArm64, nil))
	})

	t.Run("single os-gated rule", func(t *testing.T) {
		list := []Rule{{Action: ActionAllow, OS: &OSMatcher{Name: "osx"}}}
		require.False(t, ShouldInclude(list, linuxX64, nil))
		require.True(t, ShouldInclude(list, osxArm64, nil))
	})
}
