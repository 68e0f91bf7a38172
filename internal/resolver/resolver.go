// Package resolver checks that an application entry still resolves to a
// downloadable APK by following its source the way the app would.
package resolver

import (
	"context"
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/output"
	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

const (
	// DefaultUserAgent mimics a mobile browser; some download pages refuse
	// unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Linux; Android 10; K) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/114.0.0.0 Mobile Safari/537.36"

	DefaultTimeout     = 30 * time.Second
	DefaultMaxReleases = 25
	DefaultGitHubAPI   = "https://api.github.com"

	// maxStoredAPKURLs caps the APK URLs kept on a scraped result.
	maxStoredAPKURLs = 5
)

// Options configures a Tester.
type Options struct {
	// Client overrides the HTTP client. When set it is used for every
	// request, including apps that allow insecure TLS.
	Client *http.Client

	// GitHubToken authenticates GitHub API calls to avoid rate limits.
	GitHubToken string

	// GitHubAPI is the GitHub API base URL.
	GitHubAPI string

	// MaxReleases is how many releases are fetched per repository.
	MaxReleases int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	UserAgent string
}

// Result is the outcome of testing one entry.
type Result struct {
	AppName    string   `json:"app_name" yaml:"app_name"`
	AppID      string   `json:"app_id" yaml:"app_id"`
	Source     string   `json:"source" yaml:"source"`
	URL        string   `json:"url" yaml:"url"`
	Passed     bool     `json:"passed" yaml:"passed"`
	Version    string   `json:"version,omitempty" yaml:"version,omitempty"`
	APKCount   int      `json:"apk_count" yaml:"apk_count"`
	APKURLs    []string `json:"apk_urls" yaml:"apk_urls"`
	Error      string   `json:"error,omitempty" yaml:"error,omitempty"`
	Warnings   []string `json:"warnings" yaml:"warnings"`
	DurationMS int64    `json:"duration_ms" yaml:"duration_ms"`
}

func (r *Result) warn(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

func (r *Result) fail(msg string) Result {
	r.Error = msg
	return *r
}

// Tester runs live checks against app sources.
type Tester struct {
	opts     Options
	client   *http.Client
	insecure *http.Client
}

// New returns a Tester with defaults filled in.
func New(opts Options) *Tester {
	if opts.GitHubAPI == "" {
		opts.GitHubAPI = DefaultGitHubAPI
	}
	opts.GitHubAPI = strings.TrimSuffix(opts.GitHubAPI, "/")
	if opts.MaxReleases <= 0 {
		opts.MaxReleases = DefaultMaxReleases
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	t := &Tester{opts: opts}
	if opts.Client != nil {
		t.client = opts.Client
		t.insecure = opts.Client
		return t
	}

	t.client = &http.Client{Timeout: opts.Timeout}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opted in per app via allowInsecure
	t.insecure = &http.Client{Timeout: opts.Timeout, Transport: transport}
	return t
}

// Test resolves a single entry.
func (t *Tester) Test(ctx context.Context, e catalog.Entry) Result {
	source := e.Source()
	r := Result{
		AppName:  orUnknown(e.Name()),
		AppID:    orUnknown(e.ID()),
		Source:   source,
		URL:      orUnknown(e.URL()),
		APKURLs:  []string{},
		Warnings: []string{},
	}

	settings, _, err := e.Settings()
	if err != nil {
		return r.fail("Cannot parse additionalSettings JSON")
	}
	s := Settings(settings)

	log := output.EntryLogger(r.AppName)
	log.Debug("testing", "source", source, "url", r.URL)

	start := time.Now()
	client := t.client
	if s.Bool("allowInsecure", false) {
		client = t.insecure
	}
	f := &fetcher{client: client, userAgent: t.opts.UserAgent}

	switch source {
	case schema.SourceGitHub:
		r = t.testGitHub(ctx, f, e, s, r)
	case schema.SourceCodeberg:
		r = t.testCodeberg(ctx, f, e, s, r)
	case schema.SourceHTML, schema.SourceDirectAPKLink:
		r = t.testHTML(ctx, f, e, s, r)
	default:
		r.Passed = true
		r.warn("Skipped: source type '" + source + "' not yet supported")
	}
	r.DurationMS = time.Since(start).Milliseconds()

	log.Debug("tested", "passed", r.Passed, "duration_ms", r.DurationMS)
	return r
}

// TestAll resolves every entry in order, calling done after each one.
func (t *Tester) TestAll(ctx context.Context, apps []catalog.Entry, done func(Result)) []Result {
	results := make([]Result, 0, len(apps))
	for _, e := range apps {
		if ctx.Err() != nil {
			break
		}
		r := t.Test(ctx, e)
		results = append(results, r)
		if done != nil {
			done(r)
		}
	}
	return results
}

func orUnknown(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
