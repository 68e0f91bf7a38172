package schema

import (
	"net/url"
	"slices"
	"strings"
)

// Override source values understood by the resolver.
const (
	SourceGitHub        = "GitHub"
	SourceGitLab        = "GitLab"
	SourceCodeberg      = "Codeberg"
	SourceFDroid        = "FDroid"
	SourceFDroidRepo    = "FDroidRepo"
	SourceIzzyOnDroid   = "IzzyOnDroid"
	SourceSourceHut     = "SourceHut"
	SourceSourceForge   = "SourceForge"
	SourceAPKMirror     = "APKMirror"
	SourceAPKPure       = "APKPure"
	SourceUptodown      = "Uptodown"
	SourceJenkins       = "Jenkins"
	SourceHTML          = "HTML"
	SourceDirectAPKLink = "DirectAPKLink"
)

var sources = []string{
	SourceAPKMirror,
	SourceAPKPure,
	SourceCodeberg,
	SourceDirectAPKLink,
	SourceFDroid,
	SourceFDroidRepo,
	SourceGitHub,
	SourceGitLab,
	SourceHTML,
	SourceIzzyOnDroid,
	SourceJenkins,
	SourceSourceForge,
	SourceSourceHut,
	SourceUptodown,
}

// hostSources maps a registrable host to the source it implies.
var hostSources = []struct {
	host   string
	source string
}{
	{"github.com", SourceGitHub},
	{"gitlab.com", SourceGitLab},
	{"codeberg.org", SourceCodeberg},
	{"f-droid.org", SourceFDroid},
	{"apt.izzysoft.de", SourceIzzyOnDroid},
	{"git.sr.ht", SourceSourceHut},
	{"sourceforge.net", SourceSourceForge},
	{"apkmirror.com", SourceAPKMirror},
	{"apkpure.com", SourceAPKPure},
	{"uptodown.com", SourceUptodown},
}

// Sources returns the known override sources, sorted.
func Sources() []string {
	return slices.Clone(sources)
}

// IsKnownSource reports whether v is a known override source.
func IsKnownSource(v string) bool {
	return slices.Contains(sources, v)
}

// DetectSource infers the source from a URL's host. It returns "" when the
// host implies no particular source.
func DetectSource(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	for _, hs := range hostSources {
		if host == hs.host || strings.HasSuffix(host, "."+hs.host) {
			return hs.source
		}
	}
	return ""
}

// EffectiveSource is the source an app resolves with: a known override,
// else the source implied by the URL host, else HTML. An unrecognized
// override is ignored.
func EffectiveSource(override, rawURL string) string {
	if IsKnownSource(override) {
		return override
	}
	if s := DetectSource(rawURL); s != "" {
		return s
	}
	return SourceHTML
}

// IsScrapeSource reports whether the source resolves by scraping HTML pages.
func IsScrapeSource(source string) bool {
	return source == SourceHTML || source == SourceDirectAPKLink
}
