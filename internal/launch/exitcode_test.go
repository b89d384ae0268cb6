package launch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyExitCode(t *testing.T) {
	cases := []struct {
		code int
		want ExitOutcome
	}{
		{0, OutcomeSuccess},
		{1, OutcomeGenericError},
		{2, OutcomeBadJVMArgs},
		{3, OutcomeInvalidSession},
		{126, OutcomeAccessDenied},
		{127, OutcomeJavaNotFound},
		{137, OutcomeOutOfMemoryKilled},
		{143, OutcomeTerminatedBySignal},
		{250, OutcomeUnmappedOther},
		{-1, OutcomeUnmappedOther},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyExitCode(tc.code), "code %d", tc.code)
	}
}

func TestClassifyOutput(t *testing.T) {
	t.Run("known signatures", func(t *testing.T) {
		cases := []struct {
			stderr string
			want   CrashCause
		}{
			{"java.lang.UnsupportedClassVersionError: net/minecraft/client/main/Main", CauseIncompatibleJava},
			{"Error: Could not find or load main class net.minecraft.client.main.Main", CauseMissingLibraries},
			{"java.lang.NoClassDefFoundError: org/lwjgl/Sys", CauseMissingLibraries},
			{"Caused by: java.lang.ClassNotFoundException: org.lwjgl.Sys", CauseMissingLibraries},
			{"net.minecraftforge.fml.common.LoaderExceptionModCrash: Caught exception from examplemod", CauseCorruptedMod},
			{"Exception in thread \"main\" java.lang.OutOfMemoryError: Java heap space", CauseOutOfMemory},
		}
		for _, tc := range cases {
			assert.Equal(t, tc.want, ClassifyOutput(tc.stderr, OutcomeGenericError), "stderr %q", tc.stderr)
		}
	})

	t.Run("signal exits with silent stderr read as user termination", func(t *testing.T) {
		assert.Equal(t, CauseUserTerminated, ClassifyOutput("", OutcomeTerminatedBySignal))
	})

	t.Run("nothing recognizable is unknown", func(t *testing.T) {
		assert.Equal(t, CauseUnknown, ClassifyOutput("some chatter", OutcomeGenericError))
	})

	t.Run("stderr signature beats the signal attribution", func(t *testing.T) {
		got := ClassifyOutput("java.lang.OutOfMemoryError: GC overhead limit exceeded", OutcomeTerminatedBySignal)
		assert.Equal(t, CauseOutOfMemory, got)
	})
}
