package config

import "fmt"

const (
	versionMajor = 0
	versionMinor = 1
	versionPatch = 0
)

// GetVersion returns the version as bytes, major then minor then patch.
func GetVersion() []byte {
	return []byte{versionMajor, versionMinor, versionPatch}
}

// GetVersionString returns the semantic version of this build.
func GetVersionString() string {
	return FormatVersion(GetVersion())
}

// FormatVersion renders a three-byte version as a semantic version
// string.
func FormatVersion(version []byte) string {
	return fmt.Sprintf("%d.%d.%d", version[0], version[1], version[2])
}
