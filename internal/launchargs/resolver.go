package launchargs

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
	"github.com/yanquisalexander/launchcore/internal/manifest"
	"github.com/yanquisalexander/launchcore/internal/platform"
	"github.com/yanquisalexander/launchcore/internal/rules"
)

// launchWrapperMainClass is the pre-1.13 mod-loader bootstrap entry point.
// Its presence, combined with an old enough base version, requires the
// legacy Forge tweak class to be injected.
const launchWrapperMainClass = "net.minecraft.launchwrapper.Launch"

// forgeTweakClass is the tweaker injected for legacy Forge bootstraps.
const forgeTweakClass = "net.minecraftforge.fml.common.launcher.FMLTweaker"

// repeatableJVMFlags may appear more than once on a JVM command line; the
// leading-token deduplication must not fold them.
var repeatableJVMFlags = map[string]bool{
	"--add-opens":      true,
	"--add-exports":    true,
	"--add-modules":    true,
	"--enable-preview": true,
}

// requiredGameFlags lists the game flags every launch must carry, paired
// with the placeholder key that supplies the value. Order matters: missing
// flags are injected in this order.
var requiredGameFlags = []struct {
	flag string
	key  string
}{
	{"--username", KeyPlayerName},
	{"--version", KeyVersionName},
	{"--gameDir", KeyGameDirectory},
	{"--assetsDir", KeyAssetsRoot},
	{"--assetIndex", KeyAssetsIndexName},
	{"--uuid", KeyAuthUUID},
	{"--accessToken", KeyAuthAccessToken},
	{"--userType", KeyUserType},
	{"--versionType", KeyVersionType},
}

// Resolver expands descriptor argument lists for one launch attempt.
type Resolver struct {
	Platform     platform.Platform
	Placeholders Placeholders
	// MemoryMB is the allocated heap size used for the baseline -Xms/-Xmx pair.
	MemoryMB int
}

// JVMArguments builds the ordered JVM argument list: baseline memory flags,
// then the descriptor's structured jvm list (or the legacy fixed set when
// none exists), with exactly one classpath flag pair guaranteed. The main
// class is not part of this list; the plan assembler appends it between the
// JVM and game vectors.
func (r *Resolver) JVMArguments(ctx context.Context, desc *manifest.Descriptor) []string {
	logger := ctxlog.FromContext(ctx)

	memory := r.MemoryMB
	if memory <= 0 {
		memory = 2048
	}
	initial := memory / 2
	if initial < 256 {
		initial = 256
	}
	args := []string{
		fmt.Sprintf("-Xms%dM", initial),
		fmt.Sprintf("-Xmx%dM", memory),
	}

	seen := make(map[string]bool)
	for _, a := range args {
		seen[leadingToken(a)] = true
	}
	appendUnique := func(values ...string) {
		for _, v := range values {
			lead := leadingToken(v)
			if seen[lead] && !repeatableJVMFlags[lead] {
				logger.Debug("Dropping duplicate JVM argument.", "argument", v)
				continue
			}
			seen[lead] = true
			args = append(args, v)
		}
	}

	if desc.Arguments != nil && len(desc.Arguments.JVM) > 0 {
		for _, tok := range desc.Arguments.JVM {
			// JVM tokens never consult feature flags.
			appendUnique(r.expandToken(tok, nil)...)
		}
	} else {
		appendUnique(r.legacyJVMArguments()...)
	}

	if !seen["-cp"] && !seen["-classpath"] {
		args = append(args, "-cp", r.Placeholders[KeyClasspath])
	}

	logger.Debug("JVM arguments resolved.", "count", len(args))
	return args
}

// legacyJVMArguments is the fixed flag set used for descriptors that predate
// structured argument lists.
func (r *Resolver) legacyJVMArguments() []string {
	args := []string{
		"-Djava.library.path=" + r.Placeholders[KeyNativesDirectory],
		"-Dminecraft.launcher.brand=" + r.Placeholders[KeyLauncherName],
		"-Dminecraft.launcher.version=" + r.Placeholders[KeyLauncherVersion],
	}
	if r.Platform.OS == "osx" {
		args = append(args, "-XstartOnFirstThread")
	}
	if r.Platform.OS == "windows" {
		args = append(args, "-XX:HeapDumpPath=MojangTricksIntelDriversForPerformance_javaw.exe_minecraft.exe.heapdump")
		if r.Platform.Arch == "x86" {
			args = append(args, "-Xss1M")
		}
	}
	return args
}

// GameArguments builds the ordered game argument list from the structured
// list, the legacy single-string format, or a minimal synthesized set, then
// injects any required flags still missing and, for legacy mod-loader
// bootstraps on old base versions, the Forge tweak class.
func (r *Resolver) GameArguments(ctx context.Context, desc *manifest.Descriptor, baseVersion string) []string {
	logger := ctxlog.FromContext(ctx)

	var args []string
	switch {
	case desc.Arguments != nil && len(desc.Arguments.Game) > 0:
		args = r.structuredGameArguments(ctx, desc.Arguments.Game)
	case desc.MinecraftArguments != "":
		logger.Debug("Using legacy minecraftArguments string.")
		args = strings.Fields(r.Placeholders.Expand(desc.MinecraftArguments))
	default:
		logger.Warn("Descriptor has no game arguments at all, synthesizing a minimal set.")
		args = []string{
			"--username", r.Placeholders[KeyPlayerName],
			"--version", r.Placeholders[KeyVersionName],
			"--gameDir", r.Placeholders[KeyGameDirectory],
			"--assetsDir", r.Placeholders[KeyAssetsRoot],
		}
	}

	for _, required := range requiredGameFlags {
		if !containsFlag(args, required.flag) {
			args = append(args, required.flag, r.Placeholders[required.key])
		}
	}

	if needsForgeTweaker(baseVersion, desc.MainClass) && !containsFlag(args, "--tweakClass") {
		logger.Debug("Injecting legacy Forge tweak class.", "baseVersion", baseVersion)
		args = append(args, "--tweakClass", forgeTweakClass)
	}

	logger.Debug("Game arguments resolved.", "count", len(args))
	return args
}

// structuredGameArguments expands the structured game list. Feature-gated
// tokens are evaluated with every feature flag false: this core resolves no
// custom resolution, quick-play, or demo modes. Flag/value pairs are
// deduplicated by lowercase flag name.
func (r *Resolver) structuredGameArguments(ctx context.Context, tokens []manifest.Token) []string {
	logger := ctxlog.FromContext(ctx)

	noFeatures := map[string]bool{}
	var expanded []string
	for _, tok := range tokens {
		expanded = append(expanded, r.expandToken(tok, noFeatures)...)
	}

	var args []string
	seenFlags := make(map[string]bool)
	for i := 0; i < len(expanded); i++ {
		arg := expanded[i]
		if !strings.HasPrefix(arg, "-") {
			args = append(args, arg)
			continue
		}
		flag := strings.ToLower(arg)
		value, hasValue := "", false
		if i+1 < len(expanded) && !strings.HasPrefix(expanded[i+1], "-") {
			value, hasValue = expanded[i+1], true
			i++
		}
		if seenFlags[flag] {
			logger.Debug("Dropping duplicate game flag.", "flag", arg)
			continue
		}
		seenFlags[flag] = true
		args = append(args, arg)
		if hasValue {
			args = append(args, value)
		}
	}
	return args
}

// expandToken resolves one argument token: literals expand placeholders
// directly, conditionals run their rules first and expand every carried
// value when included.
func (r *Resolver) expandToken(tok manifest.Token, features map[string]bool) []string {
	if tok.IsLiteral() {
		return []string{r.Placeholders.Expand(tok.Literal)}
	}
	if !rules.ShouldInclude(tok.Rules, r.Platform, features) {
		return nil
	}
	out := make([]string, 0, len(tok.Values))
	for _, v := range tok.Values {
		out = append(out, r.Placeholders.Expand(v))
	}
	return out
}

// containsFlag reports whether the argument list already carries a flag,
// compared case-insensitively.
func containsFlag(args []string, flag string) bool {
	for _, a := range args {
		if strings.EqualFold(a, flag) {
			return true
		}
	}
	return false
}

// leadingToken returns the first whitespace-delimited token of an argument,
// the identity used by the JVM-side duplicate check.
func leadingToken(arg string) string {
	if i := strings.IndexByte(arg, ' '); i >= 0 {
		return arg[:i]
	}
	return arg
}

// needsForgeTweaker reports whether the merged descriptor needs the legacy
// tweak-class flag: a base version below 1.13 launched through the
// LaunchWrapper bootstrap.
func needsForgeTweaker(baseVersion, mainClass string) bool {
	return mainClass == launchWrapperMainClass && minorVersion(baseVersion) < 13
}

// minorVersion parses the minor component of a "1.x[.y]" version id,
// returning a high sentinel when the id does not follow that shape so
// non-release ids never trigger legacy behavior.
func minorVersion(version string) int {
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return 1 << 30
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return 1 << 30
	}
	return minor
}
