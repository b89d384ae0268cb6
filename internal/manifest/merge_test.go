package manifest

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

func testCtx() context.Context {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return ctxlog.WithLogger(context.Background(), logger)
}

func lib(name string) Library {
	return Library{Name: name}
}

func libraryNames(libs []Library) []string {
	names := make([]string, 0, len(libs))
	for _, l := range libs {
		names = append(names, l.Name)
	}
	return names
}

func TestMerge_ScalarOverride(t *testing.T) {
	base := &Descriptor{ID: "1.20.1", MainClass: "net.minecraft.client.main.Main", Type: "release"}
	overlay := &Descriptor{ID: "fabric-loader-1.20.1", MainClass: "net.fabricmc.loader.impl.launch.knot.KnotClient"}

	merged := Merge(testCtx(), base, overlay)

	assert.Equal(t, "fabric-loader-1.20.1", merged.ID)
	assert.Equal(t, "net.fabricmc.loader.impl.launch.knot.KnotClient", merged.MainClass)
	// The overlay declared no type, so the base value survives.
	assert.Equal(t, "release", merged.Type)
	// Inheritance is consumed by the merge, never carried forward.
	assert.Empty(t, merged.InheritsFrom)
}

func TestMerge_DisjointLibrariesConcatenate(t *testing.T) {
	base := &Descriptor{Libraries: []Library{
		lib("com.mojang:brigadier:1.1.8"),
		lib("org.lwjgl:lwjgl:3.3.2"),
	}}
	overlay := &Descriptor{Libraries: []Library{
		lib("net.fabricmc:fabric-loader:0.15.0"),
		lib("org.ow2.asm:asm:9.6"),
	}}

	merged := Merge(testCtx(), base, overlay)

	// No key collisions: the union is the plain concatenation, base first.
	assert.Equal(t, []string{
		"com.mojang:brigadier:1.1.8",
		"org.lwjgl:lwjgl:3.3.2",
		"net.fabricmc:fabric-loader:0.15.0",
		"org.ow2.asm:asm:9.6",
	}, libraryNames(merged.Libraries))
}

func TestMerge_CollisionOverlayWins(t *testing.T) {
	base := &Descriptor{Libraries: []Library{
		lib("org.ow2.asm:asm:9.3"),
		lib("com.mojang:brigadier:1.1.8"),
	}}
	overlay := &Descriptor{Libraries: []Library{
		lib("org.ow2.asm:asm:9.6"),
	}}

	merged := Merge(testCtx(), base, overlay)

	require.Len(t, merged.Libraries, 2)
	// The replacement stays at the base entry's position.
	assert.Equal(t, "org.ow2.asm:asm:9.6", merged.Libraries[0].Name)
	assert.Equal(t, "com.mojang:brigadier:1.1.8", merged.Libraries[1].Name)
}

func TestMerge_Log4jHigherVersionWins(t *testing.T) {
	t.Run("overlay carries the higher version", func(t *testing.T) {
		base := &Descriptor{Libraries: []Library{lib("org.apache.logging.log4j:log4j-core:2.0")}}
		overlay := &Descriptor{Libraries: []Library{lib("org.apache.logging.log4j:log4j-core:2.8.1")}}

		merged := Merge(testCtx(), base, overlay)

		require.Len(t, merged.Libraries, 1)
		assert.Equal(t, "org.apache.logging.log4j:log4j-core:2.8.1", merged.Libraries[0].Name)
	})

	t.Run("base carries the higher version", func(t *testing.T) {
		base := &Descriptor{Libraries: []Library{lib("org.apache.logging.log4j:log4j-core:2.9")}}
		overlay := &Descriptor{Libraries: []Library{lib("org.apache.logging.log4j:log4j-core:2.1")}}

		merged := Merge(testCtx(), base, overlay)

		require.Len(t, merged.Libraries, 1)
		assert.Equal(t, "org.apache.logging.log4j:log4j-core:2.9", merged.Libraries[0].Name)
	})
}

func TestCompareDottedVersions(t *testing.T) {
	assert.Negative(t, compareDottedVersions("2.0", "2.8.1"))
	assert.Positive(t, compareDottedVersions("2.9", "2.1"))
	assert.Zero(t, compareDottedVersions("2.8.1", "2.8.1"))
	// A shorter version compares lower once components run out.
	assert.Negative(t, compareDottedVersions("2.8", "2.8.1"))
	// Non-numeric components compare as lower than any numeric one.
	assert.Negative(t, compareDottedVersions("2.8-beta", "2.8"))
}

func TestMerge_StructuredArgumentsConcatenate(t *testing.T) {
	base := &Descriptor{Arguments: &Arguments{
		JVM:  []Token{{Literal: "-Xss1M"}},
		Game: []Token{{Literal: "--username"}, {Literal: "${auth_player_name}"}},
	}}
	overlay := &Descriptor{Arguments: &Arguments{
		JVM: []Token{{Literal: "-DFabricMcEmu=net.minecraft.client.main.Main"}},
	}}

	merged := Merge(testCtx(), base, overlay)

	require.NotNil(t, merged.Arguments)
	require.Len(t, merged.Arguments.JVM, 2)
	assert.Equal(t, "-Xss1M", merged.Arguments.JVM[0].Literal)
	assert.Equal(t, "-DFabricMcEmu=net.minecraft.client.main.Main", merged.Arguments.JVM[1].Literal)
	assert.Len(t, merged.Arguments.Game, 2)
}

func TestMergeLegacyArguments(t *testing.T) {
	t.Run("overlay flag overwrites base flag in place", func(t *testing.T) {
		got := mergeLegacyArguments(
			"--username ${auth_player_name} --version 1.7.10",
			"--version 1.7.10-Forge --tweakClass cpw.mods.fml.common.launcher.FMLTweaker",
		)
		assert.Equal(t,
			"--username ${auth_player_name} --version 1.7.10-Forge --tweakClass cpw.mods.fml.common.launcher.FMLTweaker",
			got)
	})

	t.Run("odd token counts do not misalign", func(t *testing.T) {
		// A trailing value-less flag must not shift the following source's
		// tokens into the wrong pairs.
		got := mergeLegacyArguments("--demo", "--username Steve")
		assert.Equal(t, "--demo --username Steve", got)
	})

	t.Run("both empty yields empty", func(t *testing.T) {
		assert.Empty(t, mergeLegacyArguments("", ""))
	})
}
