package domain

import (
	"fmt"
	"slices"
)

// APIVersion is the path prefix a route group is served under.
type APIVersion string

const APIVersionV1 APIVersion = "v1"

var supportedVersions = []APIVersion{APIVersionV1}

// ParseAPIVersion accepts "v1" or "/v1".
func ParseAPIVersion(s string) (APIVersion, error) {
	if len(s) > 0 && s[0] == '/' {
		s = s[1:]
	}
	v := APIVersion(s)
	if !slices.Contains(supportedVersions, v) {
		return "", fmt.Errorf("unsupported api version %q", s)
	}
	return v, nil
}

func (v APIVersion) String() string {
	return string(v)
}

// Prefix is the route prefix for the version, e.g. "/v1".
func (v APIVersion) Prefix() string {
	return "/" + string(v)
}
