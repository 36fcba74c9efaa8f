package repair

import (
	"log/slog"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// ParentSegment is the path segment inserted to climb one directory.
const ParentSegment = ".."

var schemeHostRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://[^/?#]+`)

// LinkOptions describes the context a link target is repaired in.
type LinkOptions struct {
	// SelfPrefix is the repaired, percent-encoded basename of the document the
	// link lives in. A first segment equal to it is dropped.
	SelfPrefix string
	// ParentPrefixes are sibling folder names, not percent-encoded. A first
	// segment that decodes to one of them gets a leading "..".
	ParentPrefixes []string
	// URLPrefix segments are prepended before repair.
	URLPrefix []string
	// Document marks a link to another note, whose .md extension is stripped.
	Document bool
}

// Link rebuilds `[name](target)` with a repaired target. The display name is
// kept byte for byte and absolute URLs (scheme and host) are returned as is.
func Link(name, target string, opts LinkOptions, logger *slog.Logger) string {
	return "[" + name + "](" + Target(target, opts, logger) + ")"
}

// Target repairs a link target according to opts.
func Target(target string, opts LinkOptions, logger *slog.Logger) string {
	if isAbsolute(target, logger) {
		return target
	}

	raw := target
	if opts.Document {
		raw = strings.TrimSuffix(raw, DocumentExt)
	}
	raw = strings.TrimPrefix(raw, "/")

	segments := make([]string, 0, len(opts.URLPrefix)+strings.Count(raw, "/")+1)
	segments = append(segments, opts.URLPrefix...)
	segments = append(segments, strings.Split(raw, "/")...)
	for i, s := range segments {
		segments[i] = URLPart(s)
	}

	switch first := segments[0]; {
	case opts.SelfPrefix != "" && first == opts.SelfPrefix:
		segments = segments[1:]
	case first == ParentSegment || slices.Contains(opts.ParentPrefixes, Unquote(first)):
		segments = append([]string{ParentSegment}, segments...)
	}

	repaired := strings.Join(segments, "/")
	if logger != nil {
		logger.Debug("link repaired", slog.String("from", target), slog.String("to", repaired))
	}
	return repaired
}

func isAbsolute(target string, logger *slog.Logger) bool {
	u, err := url.Parse(target)
	if err != nil {
		if schemeHostRe.MatchString(target) {
			return true
		}
		if logger != nil {
			logger.Warn("link target is not a valid URL, repairing it as a relative path",
				slog.String("target", target), slog.String("error", err.Error()))
		}
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
