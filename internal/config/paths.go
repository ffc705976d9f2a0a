// Package config resolves protoslice configuration paths.
//
// The manifest location can be set explicitly on the command line or via the
// PROTOSLICE_MANIFEST environment variable; otherwise protoslice.yaml in the
// working directory is used.
package config

import "os"

// DefaultManifestName is the manifest filename looked up in the working
// directory when no override is given.
const DefaultManifestName = "protoslice.yaml"

// ManifestPath resolves the manifest path. Precedence: explicit flag value,
// PROTOSLICE_MANIFEST environment variable, then the default name.
func ManifestPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("PROTOSLICE_MANIFEST"); env != "" {
		return env
	}
	return DefaultManifestName
}
