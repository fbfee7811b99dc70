package domain

import (
	"net/url"
	"strings"
	"unicode"

	"go.trai.ch/zerr"
)

// DefaultQueryKey is the query parameter that carries the version token.
const DefaultQueryKey = "v"

// VersionedPath is an asset URL split at its query string and fragment.
// No part is decoded, so String reproduces the input byte for byte.
type VersionedPath struct {
	// Path is everything before the query string.
	Path string
	// Query is the raw query without the leading '?'.
	Query string
	// HasQuery distinguishes "a.png?" from "a.png".
	HasQuery bool
	// Fragment is the raw fragment without the leading '#'.
	Fragment    string
	HasFragment bool
}

// SplitVersionedPath splits raw into path, query and fragment.
func SplitVersionedPath(raw string) VersionedPath {
	var v VersionedPath
	rest := raw
	if i := strings.IndexByte(rest, '#'); i >= 0 {
		v.Fragment, v.HasFragment = rest[i+1:], true
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '?'); i >= 0 {
		v.Query, v.HasQuery = rest[i+1:], true
		rest = rest[:i]
	}
	v.Path = rest
	return v
}

// WithParam appends key=value to the query string.
// Existing parameters are kept as they are, including one named key: the new
// value is appended after it, so a reader that takes the last value sees ours.
func (v VersionedPath) WithParam(key, value string) VersionedPath {
	param := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	switch {
	case v.Query == "":
		v.Query = param
	case strings.HasSuffix(v.Query, "&"):
		v.Query += param
	default:
		v.Query += "&" + param
	}
	v.HasQuery = true
	return v
}

// String reassembles the path, query and fragment.
func (v VersionedPath) String() string {
	var b strings.Builder
	b.Grow(len(v.Path) + len(v.Query) + len(v.Fragment) + 2)
	b.WriteString(v.Path)
	if v.HasQuery {
		b.WriteByte('?')
		b.WriteString(v.Query)
	}
	if v.HasFragment {
		b.WriteByte('#')
		b.WriteString(v.Fragment)
	}
	return b.String()
}

// AppendVersion returns path with key=token added to its query string, before any fragment.
func AppendVersion(path, key, token string) string {
	return SplitVersionedPath(path).WithParam(key, token).String()
}

// AssetRef is the normalized form of an asset path.
type AssetRef struct {
	// Key is the storage and cache key: rooted at "/", percent-decoded, cleaned,
	// and with the path base removed.
	Key string
	// External is true for URLs that point outside the web root
	// (scheme URLs, protocol-relative URLs). Key is empty for them.
	External bool
}

// NormalizeAssetPath turns a request path into the key used for both file and cache lookups.
// Paths that differ only by the path base prefix, redundant slashes or "." segments share a key.
func NormalizeAssetPath(path, pathBase string) (AssetRef, error) {
	raw := SplitVersionedPath(path).Path
	if isExternalURL(raw) {
		return AssetRef{External: true}, nil
	}
	if strings.TrimSpace(raw) == "" {
		return AssetRef{}, invalidPath(path, pathBase, "empty path")
	}

	base, err := normalizePathBase(path, pathBase)
	if err != nil {
		return AssetRef{}, err
	}

	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return AssetRef{}, invalidPath(path, pathBase, "malformed percent-encoding")
	}
	if strings.ContainsFunc(decoded, unicode.IsControl) {
		return AssetRef{}, invalidPath(path, pathBase, "control character in path")
	}

	key, ok := cleanKey(decoded)
	if !ok {
		return AssetRef{}, invalidPath(path, pathBase, "path escapes the web root")
	}

	return AssetRef{Key: stripPathBase(key, base)}, nil
}

func normalizePathBase(path, pathBase string) (string, error) {
	if pathBase == "" || pathBase == "/" {
		return "", nil
	}
	if !strings.HasPrefix(pathBase, "/") {
		return "", invalidPath(path, pathBase, "path base must start with '/'")
	}
	if strings.ContainsAny(pathBase, "?#") {
		return "", invalidPath(path, pathBase, "path base must not contain a query or fragment")
	}
	// Keys are compared decoded, so "/my%20app" and "/my app" name the same base.
	decoded, err := url.PathUnescape(pathBase)
	if err != nil {
		return "", invalidPath(path, pathBase, "malformed percent-encoding in path base")
	}
	base, ok := cleanKey(decoded)
	if !ok {
		return "", invalidPath(path, pathBase, "path base escapes the web root")
	}
	if base == "/" {
		return "", nil
	}
	return base, nil
}

func isExternalURL(raw string) bool {
	if strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

// cleanKey resolves "." and ".." segments and collapses slashes.
// It reports false when ".." would climb above the root.
func cleanKey(p string) (string, bool) {
	segments := strings.Split(p, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
		case "..":
			if len(out) == 0 {
				return "", false
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}
	return "/" + strings.Join(out, "/"), true
}

// stripPathBase removes base from key when key starts with it on a segment boundary.
// The comparison ignores case, as request path bases do.
func stripPathBase(key, base string) string {
	if base == "" || len(key) < len(base) || !strings.EqualFold(key[:len(base)], base) {
		return key
	}
	if len(key) == len(base) {
		return "/"
	}
	if key[len(base)] != '/' {
		return key
	}
	return key[len(base):]
}

// invalidPath wraps ErrInvalidPath so callers can match it with errors.Is.
func invalidPath(path, pathBase, reason string) error {
	err := zerr.With(zerr.Wrap(ErrInvalidPath, reason), "path", path)
	return zerr.With(err, "path_base", pathBase)
}
