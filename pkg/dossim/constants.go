package dossim

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess       = 0  // Session ended normally
	ExitGeneralError  = 1  // Unknown or unclassified error
	ExitUsageError    = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic         = 3  // Internal panic (unexpected crash)
	ExitConfigError   = 10 // Invalid configuration or parameters
	ExitSnapshotError = 11 // Snapshot could not be restored
	ExitBatchAborted  = 12 // Batch run aborted by an unrecoverable error
	ExitBatchFailed   = 13 // Batch run recorded failures (strict mode)
)

const (
	// DefaultDrive is the drive letter of the simulated disk.
	DefaultDrive = 'C'

	// DefaultVolumeLabel is reported by VOL and DIR.
	DefaultVolumeLabel = "DOS-SIMULATOR"

	// DefaultVolumeSerial is reported by VOL and DIR.
	DefaultVolumeSerial = "1337-42AB"

	// DefaultCapacity is the size of the virtual disk in bytes (10 MiB).
	DefaultCapacity int64 = 10 * 1024 * 1024

	// DefaultMaxBatchDepth bounds nested batch invocation (CALL or running a
	// .BAT file from a batch file).
	DefaultMaxBatchDepth = 8

	// MaxNameLength is the longest accepted file or directory name in bytes.
	MaxNameLength = 255

	// DefaultPrompt is the initial PROMPT variable.
	DefaultPrompt = "$P$G"

	// DefaultSnapshotFile is the snapshot file name used by SAVE and LOAD
	// when no name is given.
	DefaultSnapshotFile = "dos_state.yaml"

	// BatchExtension marks files that can be run by name.
	BatchExtension = ".BAT"

	// Version is the simulator version reported by VER.
	Version = "1.0.0"
)
