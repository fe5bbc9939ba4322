// Package releases contains type definitions for working with published
// release tags.
package releases

import (
	"github.com/Masterminds/semver/v3"
)

type ReleaseIntrospector interface {
	// GetReleases returns all semver release versions, deduplicated and sorted.
	GetReleases() ([]*semver.Version, error)
	// Latest returns the highest release version.
	Latest() (*semver.Version, error)
	// GetCommit returns the commit sha the given version is tagged at.
	GetCommit(*semver.Version) (string, error)
}
