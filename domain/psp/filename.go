package psp

import (
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// <id>_<description>_<source letters><stimulation>_<sign><n>_ampl_<amplitude>.<ext>
var filenamePattern = regexp.MustCompile(
	`^([a-zA-Z0-9]+)_([a-zA-Z0-9]+)_([a-zA-Z]+)([0-9]+)_([-+][1-4])_ampl_([0-9]+)\.([a-zA-Z0-9]+)$`)

// ParseFilename decodes the last path segment of name. The second return value is false
// when the segment does not follow the measurement naming scheme.
func ParseFilename(name string) (FilenameMetadata, bool) {
	base := path.Base(filepath.ToSlash(name))

	m := filenamePattern.FindStringSubmatch(base)
	if m == nil {
		return FilenameMetadata{}, false
	}

	stimulation, err := strconv.Atoi(m[4])
	if err != nil {
		return FilenameMetadata{}, false
	}
	sign, err := strconv.Atoi(m[5])
	if err != nil {
		return FilenameMetadata{}, false
	}
	amplitude, err := strconv.Atoi(m[6])
	if err != nil {
		return FilenameMetadata{}, false
	}

	return FilenameMetadata{
		SubjectID:        m[1],
		Description:      strings.ToLower(m[2]),
		Source:           CanonicalSource(m[3]),
		StimulationLevel: stimulation,
		SynapticSign:     sign,
		Amplitude:        amplitude,
	}, true
}

// CanonicalSource lowercases and sorts the letters of a source code so that codes
// differing only in letter order or case compare equal.
func CanonicalSource(letters string) string {
	r := []rune(strings.ToLower(letters))
	sort.Slice(r, func(i, j int) bool { return r[i] < r[j] })
	return string(r)
}
