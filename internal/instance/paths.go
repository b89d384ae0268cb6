package instance

import "path/filepath"

// Paths exposes the on-disk layout rooted at an instance directory:
//
//	<dir>/minecraft/versions/<id>/<id>.{json,jar}
//	<dir>/minecraft/libraries/**
//	<dir>/minecraft/assets/**
//	<dir>/minecraft/natives/<version>/
type Paths struct {
	root string
}

// Paths returns the path layout for the instance.
func (i *Instance) Paths() Paths {
	return Paths{root: i.Directory}
}

// MinecraftDir is the root of the game data tree, and the working directory
// the game process runs in.
func (p Paths) MinecraftDir() string {
	return filepath.Join(p.root, "minecraft")
}

// VersionsDir holds one subdirectory per version id.
func (p Paths) VersionsDir() string {
	return filepath.Join(p.MinecraftDir(), "versions")
}

// LibrariesDir is the maven-layout library repository.
func (p Paths) LibrariesDir() string {
	return filepath.Join(p.MinecraftDir(), "libraries")
}

// AssetsDir is the shared asset tree.
func (p Paths) AssetsDir() string {
	return filepath.Join(p.MinecraftDir(), "assets")
}

// NativesDir is where a version's native libraries are extracted by the
// download collaborator.
func (p Paths) NativesDir(version string) string {
	return filepath.Join(p.MinecraftDir(), "natives", version)
}

// VersionJar is a version's primary game archive.
func (p Paths) VersionJar(id string) string {
	return filepath.Join(p.VersionsDir(), id, id+".jar")
}
