package releases

import (
	"encoding/json"
	"fmt"

	"github.com/Masterminds/semver/v3"

	libErrs "github.com/r0tools/datasheet-libs/errors"
)

type tagData struct {
	Name   string    `json:"name"`
	Commit tagCommit `json:"commit"`
}

type tagCommit struct {
	SHA string `json:"sha"`
}

func parseTags(data []byte) ([]tagData, error) {
	var tags []tagData
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, libErrs.NewReleaseErr(fmt.Errorf("%w: %w", libErrs.ErrParseTags, err))
	}
	return tags, nil
}

func (t tagData) version() (*semver.Version, error) {
	return semver.NewVersion(t.Name)
}
