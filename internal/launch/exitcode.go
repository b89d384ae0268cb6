package launch

import "strings"

// ExitOutcome is the closed set of well-known meanings a raw exit code maps
// to. It is structural: derived from the code alone, independent of any
// captured output.
type ExitOutcome string

const (
	OutcomeSuccess            ExitOutcome = "success"
	OutcomeGenericError       ExitOutcome = "generic-error"
	OutcomeBadJVMArgs         ExitOutcome = "bad-jvm-args"
	OutcomeInvalidSession     ExitOutcome = "invalid-session"
	OutcomeAccessDenied       ExitOutcome = "access-denied"
	OutcomeJavaNotFound       ExitOutcome = "java-not-found"
	OutcomeOutOfMemoryKilled  ExitOutcome = "out-of-memory-killed"
	OutcomeTerminatedBySignal ExitOutcome = "terminated-by-signal"
	OutcomeUnmappedOther      ExitOutcome = "unmapped-other"
)

// ClassifyExitCode maps a raw exit code to its well-known outcome.
// Unrecognized codes map to OutcomeUnmappedOther; they are still reported
// verbatim in the terminal event.
func ClassifyExitCode(code int) ExitOutcome {
	switch code {
	case 0:
		return OutcomeSuccess
	case 1:
		return OutcomeGenericError
	case 2:
		return OutcomeBadJVMArgs
	case 3:
		return OutcomeInvalidSession
	case 126:
		return OutcomeAccessDenied
	case 127:
		return OutcomeJavaNotFound
	case 137:
		// 128+SIGKILL, the kernel OOM killer's signature.
		return OutcomeOutOfMemoryKilled
	case 143:
		// 128+SIGTERM.
		return OutcomeTerminatedBySignal
	default:
		return OutcomeUnmappedOther
	}
}

// CrashCause is the closed set of probable causes derived from heuristic
// substring scans of the captured stderr. It is orthogonal to ExitOutcome;
// the terminal event reports both.
type CrashCause string

const (
	CauseIncompatibleJava CrashCause = "incompatible-java"
	CauseMissingLibraries CrashCause = "missing-libraries"
	CauseCorruptedMod     CrashCause = "corrupted-mod"
	CauseOutOfMemory      CrashCause = "out-of-memory"
	CauseUserTerminated   CrashCause = "user-terminated"
	CauseUnknown          CrashCause = "unknown"
)

// causeSignatures pairs each stderr signature with its cause, scanned in
// order. More specific signatures come first.
var causeSignatures = []struct {
	substring string
	cause     CrashCause
}{
	{"UnsupportedClassVersionError", CauseIncompatibleJava},
	{"java.lang.OutOfMemoryError", CauseOutOfMemory},
	{"LoaderExceptionModCrash", CauseCorruptedMod},
	{"Caught exception from", CauseCorruptedMod},
	{"Could not find or load main class", CauseMissingLibraries},
	{"NoClassDefFoundError", CauseMissingLibraries},
	{"ClassNotFoundException", CauseMissingLibraries},
}

// ClassifyOutput scans captured stderr for known crash signatures. When no
// signature matches, a signal-terminated process is attributed to the user
// and anything else is unknown.
func ClassifyOutput(stderr string, outcome ExitOutcome) CrashCause {
	for _, sig := range causeSignatures {
		if strings.Contains(stderr, sig.substring) {
			return sig.cause
		}
	}
	if outcome == OutcomeTerminatedBySignal {
		return CauseUserTerminated
	}
	return CauseUnknown
}
