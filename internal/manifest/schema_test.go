package manifest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanquisalexander/launchcore/internal/rules"
)

func TestToken_UnmarshalJSON(t *testing.T) {
	t.Run("literal string", func(t *testing.T) {
		var tok Token
		require.NoError(t, json.Unmarshal([]byte(`"--username"`), &tok))
		assert.True(t, tok.IsLiteral())
		assert.Equal(t, "--username", tok.Literal)
	})

	t.Run("conditional with single value", func(t *testing.T) {
		raw := `{"rules":[{"action":"allow","os":{"name":"osx"}}],"value":"-XstartOnFirstThread"}`
		var tok Token
		require.NoError(t, json.Unmarshal([]byte(raw), &tok))
		assert.False(t, tok.IsLiteral())
		require.Len(t, tok.Rules, 1)
		assert.Equal(t, rules.ActionAllow, tok.Rules[0].Action)
		require.NotNil(t, tok.Rules[0].OS)
		assert.Equal(t, "osx", tok.Rules[0].OS.Name)
		assert.Equal(t, []string{"-XstartOnFirstThread"}, tok.Values)
	})

	t.Run("conditional with value list", func(t *testing.T) {
		raw := `{"rules":[{"action":"allow","features":{"has_custom_resolution":true}}],"value":["--width","${resolution_width}"]}`
		var tok Token
		require.NoError(t, json.Unmarshal([]byte(raw), &tok))
		assert.Equal(t, []string{"--width", "${resolution_width}"}, tok.Values)
		assert.Equal(t, map[string]bool{"has_custom_resolution": true}, tok.Rules[0].Features)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		var tok Token
		assert.Error(t, json.Unmarshal([]byte(`{"value":42}`), &tok))
		assert.Error(t, json.Unmarshal([]byte(`17`), &tok))
	})
}

func TestParseCoordinate(t *testing.T) {
	t.Run("plain coordinate", func(t *testing.T) {
		coord, err := ParseCoordinate("org.lwjgl:lwjgl:3.3.2")
		require.NoError(t, err)
		assert.Equal(t, "org.lwjgl", coord.Group)
		assert.Equal(t, "lwjgl", coord.Artifact)
		assert.Equal(t, "3.3.2", coord.Version)
		assert.Empty(t, coord.Classifier)
	})

	t.Run("with classifier", func(t *testing.T) {
		coord, err := ParseCoordinate("org.lwjgl:lwjgl:3.3.2:natives-linux")
		require.NoError(t, err)
		assert.Equal(t, "natives-linux", coord.Classifier)
	})

	t.Run("extension suffix is discarded", func(t *testing.T) {
		coord, err := ParseCoordinate("net.minecraftforge:forge:1.20.1-47.2.0@zip")
		require.NoError(t, err)
		assert.Equal(t, "1.20.1-47.2.0", coord.Version)
	})

	t.Run("invalid shapes", func(t *testing.T) {
		_, err := ParseCoordinate("not-a-coordinate")
		assert.Error(t, err)
		_, err = ParseCoordinate("a:b:c:d:e")
		assert.Error(t, err)
	})
}

func TestCoordinate_Key(t *testing.T) {
	withClassifier, err := ParseCoordinate("org.lwjgl:lwjgl:3.3.2:natives-linux")
	require.NoError(t, err)
	without, err := ParseCoordinate("org.lwjgl:lwjgl:3.3.1")
	require.NoError(t, err)

	// The version never participates in identity; the classifier does.
	assert.Equal(t, "org.lwjgl:lwjgl:natives-linux", withClassifier.Key())
	assert.Equal(t, "org.lwjgl:lwjgl", without.Key())
	assert.NotEqual(t, withClassifier.Key(), without.Key())
}

func TestCoordinate_Path(t *testing.T) {
	coord, err := ParseCoordinate("com.mojang:brigadier:1.1.8")
	require.NoError(t, err)
	// filepath.Join normalizes separators per platform; compare elements.
	assert.Contains(t, coord.Path(), "brigadier-1.1.8.jar")

	native, err := ParseCoordinate("org.lwjgl:lwjgl:3.3.2:natives-linux")
	require.NoError(t, err)
	assert.Contains(t, native.Path(), "lwjgl-3.3.2-natives-linux.jar")
}

func TestDescriptor_AssetIndexID(t *testing.T) {
	assert.Equal(t, "5", (&Descriptor{AssetIndex: &AssetIndex{ID: "5"}}).AssetIndexID())
	assert.Equal(t, "legacy", (&Descriptor{Assets: "legacy"}).AssetIndexID())
	structured := &Descriptor{AssetIndex: &AssetIndex{ID: "5"}, Assets: "legacy"}
	assert.Equal(t, "5", structured.AssetIndexID())
}
