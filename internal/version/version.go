// ABOUTME: Version constants for the stimuli module
// ABOUTME: Reported by the CLI and embedded in logs
package version

const (
	// Version is the module version.
	Version = "0.1.0"

	// Product is the human-readable product name.
	Product = "stimuli"
)
