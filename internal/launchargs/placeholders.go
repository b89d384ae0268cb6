// Package launchargs expands a merged descriptor's templated JVM and game
// argument lists into the concrete argument vectors a launch plan carries.
package launchargs

import "strings"

// Placeholders maps the well-known template keys that may appear in
// descriptor argument strings to their resolved values.
type Placeholders map[string]string

// Well-known placeholder keys.
const (
	KeyPlayerName         = "auth_player_name"
	KeyVersionName        = "version_name"
	KeyGameDirectory      = "game_directory"
	KeyAssetsRoot         = "assets_root"
	KeyAssetsIndexName    = "assets_index_name"
	KeyAuthUUID           = "auth_uuid"
	KeyAuthAccessToken    = "auth_access_token"
	KeyUserType           = "user_type"
	KeyVersionType        = "version_type"
	KeyNativesDirectory   = "natives_directory"
	KeyLibraryDirectory   = "library_directory"
	KeyLauncherName       = "launcher_name"
	KeyLauncherVersion    = "launcher_version"
	KeyClasspath          = "classpath"
	KeyClasspathSeparator = "classpath_separator"
)

// Expand substitutes every known ${key} occurrence in s. Unknown
// placeholders are left intact so they remain visible in logs instead of
// silently collapsing to empty strings.
func (p Placeholders) Expand(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	for key, value := range p {
		s = strings.ReplaceAll(s, "${"+key+"}", value)
	}
	return s
}
