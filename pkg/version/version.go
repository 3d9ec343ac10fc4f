// Package version reports build metadata injected with -ldflags.
package version

// Set at build time:
//
//	go build -ldflags "-X github.com/rshade/garmentlca/pkg/version.version=v1.2.3 ..."
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = "dev"
	gitCommit = ""
	buildDate = ""
)

// GetVersion returns the release version, or "dev" for local builds.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from, if known.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp, if known.
func GetBuildDate() string {
	return buildDate
}

// String returns the version with commit and date when they are set.
func String() string {
	s := version
	if gitCommit != "" {
		s += " (" + gitCommit + ")"
	}
	if buildDate != "" {
		s += " built " + buildDate
	}
	return s
}
