package stac

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// IsURL reports whether href carries a scheme and host. Plain paths and
// Windows drive prefixes (single-letter "scheme", no host) are not URLs.
func IsURL(href string) bool {
	u, err := url.Parse(href)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// Join appends path segments to a base directory href, using URL segment
// joining when the base is a URL and filesystem joining otherwise.
func Join(base string, segments ...string) string {
	if IsURL(base) {
		u, err := url.Parse(base)
		if err != nil {
			return path.Join(append([]string{base}, segments...)...)
		}
		u.Path = path.Join(append([]string{u.Path}, segments...)...)
		return u.String()
	}
	return filepath.Join(append([]string{base}, segments...)...)
}

// Resolve interprets a possibly relative link href against the location of
// the document carrying it. Absolute hrefs pass through unchanged.
func Resolve(ownerHref, linkHref string) string {
	if IsURL(linkHref) || filepath.IsAbs(linkHref) {
		return linkHref
	}
	if IsURL(ownerHref) {
		base, err := url.Parse(ownerHref)
		if err == nil {
			if ref, rerr := url.Parse(linkHref); rerr == nil {
				return base.ResolveReference(ref).String()
			}
		}
		return linkHref
	}
	return filepath.Clean(filepath.Join(filepath.Dir(ownerHref), linkHref))
}

// Relativize returns the href of toHref as seen from the directory holding
// fromHref. Hrefs that cannot be made relative (different scheme or host,
// or mixed URL/path addressing) are returned unchanged.
func Relativize(fromHref, toHref string) string {
	fromIsURL, toIsURL := IsURL(fromHref), IsURL(toHref)
	if fromIsURL != toIsURL {
		return toHref
	}
	if fromIsURL {
		fu, ferr := url.Parse(fromHref)
		tu, terr := url.Parse(toHref)
		if ferr != nil || terr != nil || fu.Scheme != tu.Scheme || fu.Host != tu.Host {
			return toHref
		}
		return dotRelative(urlRel(path.Dir(fu.Path), tu.Path))
	}
	rel, err := filepath.Rel(filepath.Dir(fromHref), toHref)
	if err != nil {
		return toHref
	}
	return dotRelative(filepath.ToSlash(rel))
}

// dotRelative prefixes "./" so relative hrefs are unambiguous in links.
func dotRelative(rel string) string {
	if rel == "." || strings.HasPrefix(rel, "./") || strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}

// urlRel is filepath.Rel for slash-separated URL paths.
func urlRel(fromDir, to string) string {
	from := strings.Split(path.Clean(fromDir), "/")
	dest := strings.Split(path.Clean(to), "/")
	common := 0
	for common < len(from) && common < len(dest) && from[common] == dest[common] {
		common++
	}
	segments := make([]string, 0, len(from)-common+len(dest)-common)
	for range from[common:] {
		segments = append(segments, "..")
	}
	segments = append(segments, dest[common:]...)
	return path.Join(segments...)
}
