package location

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// TagSeparator delimits tags in path-entry text: //a//b//
const TagSeparator = "//"

var (
	// ErrNoSuchTags is returned when tag text names no registered tag.
	ErrNoSuchTags = errors.New("no such tags")
	// ErrEmpty is returned for blank input.
	ErrEmpty = errors.New("empty location")
)

// Parse turns text typed into a path entry into a Location.
//
// Tag text keeps the order of registered, not the order typed, and drops
// unknown tags. URIs are taken as-is apart from escaping the part after the
// scheme. Everything else is a local path: ~ expands to home and relative
// paths join current's directory.
func Parse(input string, current Location, home string, registered []string) (Location, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return Location{}, ErrEmpty
	}

	if strings.HasPrefix(input, TagSeparator) {
		typed := strings.Split(strings.Trim(input, "/"), TagSeparator)
		var tags []string
		for _, tag := range registered {
			for _, t := range typed {
				if t == tag {
					tags = append(tags, tag)
					break
				}
			}
		}
		if len(tags) == 0 {
			return Location{}, ErrNoSuchTags
		}
		return FromTags(tags...), nil
	}

	if scheme, rest, ok := strings.Cut(input, "://"); ok {
		if unescaped, err := url.PathUnescape(rest); err == nil {
			rest = unescaped
		}
		return FromURI(scheme + "://" + (&url.URL{Path: rest}).EscapedPath()), nil
	}

	return FromPath(ExpandPath(input, current, home)), nil
}

// ExpandPath expands and normalizes a local path string, handling ~,
// relative paths, absolute paths and Windows drive letters.
func ExpandPath(input string, current Location, home string) string {
	if input == "~" {
		return home
	}
	if strings.HasPrefix(input, "~/") || strings.HasPrefix(input, "~\\") {
		return filepath.Clean(filepath.Join(home, input[2:]))
	}

	if isAbsolutePath(input) {
		return filepath.Clean(input)
	}

	base, ok := current.Path()
	if !ok {
		base = home
	}
	return filepath.Clean(filepath.Join(base, input))
}

// Format renders l the way a path entry shows it.
func Format(l Location) string {
	switch l.Kind() {
	case Tags:
		return TagSeparator + strings.Join(l.tags, TagSeparator) + TagSeparator
	case Path:
		if p, ok := l.Path(); ok {
			if p == string(os.PathSeparator) {
				return p
			}
			return p + string(os.PathSeparator)
		}
		if unescaped, err := url.PathUnescape(l.uri); err == nil {
			return unescaped
		}
		return l.uri
	default:
		return ""
	}
}

// isAbsolutePath checks if a path is absolute, handling both Unix and Windows paths
func isAbsolutePath(path string) bool {
	if len(path) == 0 {
		return false
	}
	if path[0] == '/' {
		return true
	}
	if runtime.GOOS == "windows" {
		// C:\, C:/ and \\server\share
		if len(path) >= 2 && isLetter(path[0]) && path[1] == ':' {
			return true
		}
		if len(path) >= 2 && path[0] == '\\' && path[1] == '\\' {
			return true
		}
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
