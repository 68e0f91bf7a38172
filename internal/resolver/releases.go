package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// lowRateLimit is the remaining GitHub quota below which a warning is added.
const lowRateLimit = 10

// release is the subset of a GitHub or Gitea release the walk needs.
type release struct {
	TagName    string  `json:"tag_name"`
	Name       string  `json:"name"`
	Body       string  `json:"body"`
	Draft      bool    `json:"draft"`
	Prerelease bool    `json:"prerelease"`
	Assets     []asset `json:"assets"`
}

type asset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

func (r *release) version() string {
	if r.TagName != "" {
		return r.TagName
	}
	return r.Name
}

// repoPath splits a repository URL into owner, repo and the parsed URL.
func repoPath(raw string) (string, string, *url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", nil, err
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", nil, fmt.Errorf("cannot parse owner/repo from: %s", raw)
	}
	return parts[0], parts[1], u, nil
}

// releaseWalk holds the settings that drive selection of a release.
type releaseWalk struct {
	settings    Settings
	titleFilter *regexp2.Regexp
	notesFilter *regexp2.Regexp
	prereleases bool
	trackOnly   bool
	fallback    bool
	includeZips bool
}

func newReleaseWalk(s Settings, withTextFilters bool) (*releaseWalk, error) {
	w := &releaseWalk{
		settings:    s,
		prereleases: s.Bool("includePrereleases", false),
		trackOnly:   s.Bool("trackOnly", false),
		fallback:    s.Bool("fallbackToOlderReleases", true),
		includeZips: s.Bool("includeZips", false),
	}
	if !withTextFilters {
		return w, nil
	}
	var err error
	if p := s.String("filterReleaseTitlesByRegEx"); p != "" {
		if w.titleFilter, err = schema.CompilePattern(p); err != nil {
			return nil, fmt.Errorf("filterReleaseTitlesByRegEx: %w", err)
		}
	}
	if p := s.String("filterReleaseNotesByRegEx"); p != "" {
		if w.notesFilter, err = schema.CompilePattern(p); err != nil {
			return nil, fmt.Errorf("filterReleaseNotesByRegEx: %w", err)
		}
	}
	return w, nil
}

func (w *releaseWalk) assets(r *release) []string {
	var urls []string
	for _, a := range r.Assets {
		switch {
		case isAPK(a.Name):
			urls = append(urls, a.BrowserDownloadURL)
		case w.includeZips && strings.HasSuffix(strings.ToLower(a.Name), ".zip"):
			urls = append(urls, a.BrowserDownloadURL)
		}
	}
	return urls
}

// find returns the first acceptable release carrying matching APKs. Track-only
// apps fall back to any tagged release.
func (w *releaseWalk) find(releases []release) (*release, []string, error) {
	for i := range releases {
		r := &releases[i]
		if r.Draft || (r.Prerelease && !w.prereleases) {
			continue
		}
		if w.titleFilter != nil && !search(w.titleFilter, r.Name) {
			continue
		}
		if w.notesFilter != nil && !search(w.notesFilter, r.Body) {
			continue
		}

		urls, err := applyAPKFilter(w.assets(r), w.settings)
		if err != nil {
			return nil, nil, err
		}
		if len(urls) == 0 && !w.trackOnly {
			if w.fallback {
				continue
			}
			break
		}
		return r, urls, nil
	}

	if w.trackOnly {
		for i := range releases {
			if releases[i].TagName != "" {
				return &releases[i], nil, nil
			}
		}
	}
	return nil, nil, nil
}

// finish fills in a passing result from the chosen release.
func finish(r Result, e catalog.Entry, s Settings, target *release, urls []string) Result {
	version, warning := extractVersion(target.version(), s)
	if warning != "" {
		r.warn(warning)
	}
	if w := apkIndexWarning(e, len(urls)); w != "" {
		r.warn(w)
	}
	r.Passed = true
	r.Version = version
	r.APKCount = len(urls)
	if urls != nil {
		r.APKURLs = urls
	}
	return r
}

// apkIndexWarning reports a preferredApkIndex past the end of the APK list.
func apkIndexWarning(e catalog.Entry, count int) string {
	raw, ok := e.Get(schema.FieldPreferredApkIndex)
	if !ok || count == 0 {
		return ""
	}
	index, err := strconv.Atoi(string(raw))
	if err != nil || index < count {
		return ""
	}
	return fmt.Sprintf("preferredApkIndex=%d but only %d APKs found", index, count)
}

func (t *Tester) testGitHub(ctx context.Context, f *fetcher, e catalog.Entry, s Settings, r Result) Result {
	owner, repo, _, err := repoPath(e.URL())
	if err != nil {
		return r.fail(err.Error())
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if t.opts.GitHubToken != "" {
		headers["Authorization"] = "token " + t.opts.GitHubToken
	}

	api := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d", t.opts.GitHubAPI, owner, repo, t.opts.MaxReleases)
	var releases []release
	header, err := f.getJSON(ctx, api, headers, &releases)
	if err != nil {
		msg := "GitHub API error: " + err.Error()
		var se *statusError
		if errors.As(err, &se) && (se.code == 403 || se.code == 429) {
			msg += " (rate limited - set GITHUB_TOKEN env var)"
		}
		return r.fail(msg)
	}

	if remaining := header.Get("X-RateLimit-Remaining"); remaining != "" {
		if n, err := strconv.Atoi(remaining); err == nil && n < lowRateLimit {
			r.warn(fmt.Sprintf("GitHub API rate limit low: %d remaining", n))
		}
	}

	if len(releases) == 0 {
		return r.fail("No releases found")
	}

	walk, err := newReleaseWalk(s, true)
	if err != nil {
		return r.fail(err.Error())
	}
	target, urls, err := walk.find(releases)
	if err != nil {
		return r.fail(err.Error())
	}
	if target == nil {
		state := "off"
		if walk.prereleases {
			state = "on"
		}
		return r.fail(fmt.Sprintf("No releases with matching APK assets found (checked %d releases, prereleases=%s%s)",
			len(releases), state,
			filterContext("titleFilter", s.String("filterReleaseTitlesByRegEx"), "apkFilter", s.String("apkFilterRegEx"))))
	}
	return finish(r, e, s, target, urls)
}

func (t *Tester) testCodeberg(ctx context.Context, f *fetcher, e catalog.Entry, s Settings, r Result) Result {
	owner, repo, u, err := repoPath(e.URL())
	if err != nil {
		return r.fail(err.Error())
	}

	api := fmt.Sprintf("%s://%s/api/v1/repos/%s/%s/releases?limit=%d", u.Scheme, u.Host, owner, repo, t.opts.MaxReleases)
	var releases []release
	if _, err := f.getJSON(ctx, api, nil, &releases); err != nil {
		return r.fail("Codeberg API error: " + err.Error())
	}
	if len(releases) == 0 {
		return r.fail("No releases found")
	}

	walk, err := newReleaseWalk(s, false)
	if err != nil {
		return r.fail(err.Error())
	}
	target, urls, err := walk.find(releases)
	if err != nil {
		return r.fail(err.Error())
	}
	if target == nil {
		return r.fail("No releases with matching APK assets")
	}
	return finish(r, e, s, target, urls)
}
