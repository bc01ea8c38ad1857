package domain

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var supportedSchema = semver.MustParse(SchemaVersion)

// DescribeSchema explains how got relates to SchemaVersion, for use in
// mismatch messages. It returns "" when got is exactly SchemaVersion.
func DescribeSchema(got string) string {
	if got == SchemaVersion {
		return ""
	}
	if got == "" {
		return fmt.Sprintf("no schema version (expected %s)", SchemaVersion)
	}
	v, err := semver.NewVersion(got)
	if err != nil {
		return fmt.Sprintf("schema %q is not a version number (expected %s)", got, SchemaVersion)
	}
	switch v.Compare(supportedSchema) {
	case -1:
		return fmt.Sprintf("schema %s is older than %s", got, SchemaVersion)
	case 1:
		return fmt.Sprintf("schema %s is newer than %s", got, SchemaVersion)
	}
	return fmt.Sprintf("schema %s must be written as %s", got, SchemaVersion)
}
