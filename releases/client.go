package releases

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Masterminds/semver/v3"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/r0tools/datasheet-libs/common"
	libErrs "github.com/r0tools/datasheet-libs/errors"
)

var logger = slog.Default().WithGroup("releases")

var _ ReleaseIntrospector = (*ReleaseIndex)(nil)

// ReleaseIndex answers version queries over one or more tag listing pages.
type ReleaseIndex struct {
	data [][]tagData
}

func NewReleaseIndex(datas ...[]byte) (*ReleaseIndex, error) {
	tdatas := make([][]tagData, len(datas))
	for i, data := range datas {
		tags, err := parseTags(data)
		if err != nil {
			return nil, err
		}
		tdatas[i] = tags
	}
	return &ReleaseIndex{tdatas}, nil
}

// GetReleases returns all semver release versions, deduplicated and sorted.
// Tags that do not parse as semver (nightlies, moving pointers) are skipped.
func (c *ReleaseIndex) GetReleases() ([]*semver.Version, error) {
	names := sets.New[string]()
	for _, tags := range c.data {
		valid := common.Filter(tags, func(t tagData) bool {
			if _, err := t.version(); err != nil {
				logger.Debug("skipping non-semver tag", slog.String("tag", t.Name))
				return false
			}
			return true
		})
		names.Insert(common.Map(valid, func(t tagData) string { return t.Name })...)
	}
	rels := common.Map(names.UnsortedList(), semver.MustParse)
	slices.SortFunc(rels, (*semver.Version).Compare)
	return rels, nil
}

// Latest returns the highest release version.
func (c *ReleaseIndex) Latest() (*semver.Version, error) {
	rels, err := c.GetReleases()
	if err != nil {
		return nil, err
	}
	if len(rels) == 0 {
		return nil, libErrs.NewReleaseErr(fmt.Errorf("releases %w", libErrs.ErrNotFound))
	}
	return rels[len(rels)-1], nil
}

// GetCommit returns the commit sha the given version is tagged at.
func (c *ReleaseIndex) GetCommit(ver *semver.Version) (string, error) {
	for _, tags := range c.data {
		for _, tag := range tags {
			parsed, err := tag.version()
			if err != nil {
				continue
			}
			if parsed.Equal(ver) {
				return tag.Commit.SHA, nil
			}
		}
	}
	return "", libErrs.NewReleaseErr(fmt.Errorf("%q %w", ver.String(), libErrs.ErrNotFound))
}
