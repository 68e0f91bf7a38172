package resolver_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/resolver"
)

func entry(t *testing.T, fields map[string]any) catalog.Entry {
	t.Helper()
	data, err := json.Marshal(fields)
	require.NoError(t, err)
	doc, err := catalog.Decode([]byte(`{"apps":[` + string(data) + `]}`))
	require.NoError(t, err)
	return doc.Apps[0]
}

func settings(t *testing.T, s map[string]any) string {
	t.Helper()
	data, err := json.Marshal(s)
	require.NoError(t, err)
	return string(data)
}

type ghRelease struct {
	TagName    string    `json:"tag_name"`
	Name       string    `json:"name"`
	Body       string    `json:"body"`
	Draft      bool      `json:"draft"`
	Prerelease bool      `json:"prerelease"`
	Assets     []ghAsset `json:"assets"`
}

type ghAsset struct {
	Name string `json:"name"`
	URL  string `json:"browser_download_url"`
}

func apk(name string) ghAsset {
	return ghAsset{Name: name, URL: "https://dl.example/" + name}
}

func githubServer(t *testing.T, releases []ghRelease, check func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			check(r)
		}
		if r.URL.Path != "/repos/owner/repo/releases" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-RateLimit-Remaining", "4999")
		_ = json.NewEncoder(w).Encode(releases)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTester(srv *httptest.Server, token string) *resolver.Tester {
	return resolver.New(resolver.Options{Client: srv.Client(), GitHubAPI: srv.URL, GitHubToken: token})
}

func TestTest_GitHub(t *testing.T) {
	releases := []ghRelease{
		{TagName: "v3.0-draft", Draft: true, Assets: []ghAsset{apk("draft.apk")}},
		{TagName: "v2.1-beta", Prerelease: true, Assets: []ghAsset{apk("beta.apk")}},
		{TagName: "v2.0", Name: "Source only", Assets: []ghAsset{{Name: "src.tar.gz"}}},
		{TagName: "v1.9", Name: "Stable 1.9", Assets: []ghAsset{apk("app-arm64.apk"), apk("app-x86.apk"), {Name: "notes.txt"}}},
	}

	t.Run("walks to the first release with APKs", func(t *testing.T) {
		var auth string
		srv := githubServer(t, releases, func(r *http.Request) {
			auth = r.Header.Get("Authorization")
			assert.Equal(t, "25", r.URL.Query().Get("per_page"))
		})

		r := newTester(srv, "secret").Test(context.Background(), entry(t, map[string]any{
			"id": "com.example", "name": "Example", "url": "https://github.com/owner/repo",
		}))
		assert.True(t, r.Passed, r.Error)
		assert.Equal(t, "v1.9", r.Version)
		assert.Equal(t, 2, r.APKCount)
		assert.Equal(t, []string{"https://dl.example/app-arm64.apk", "https://dl.example/app-x86.apk"}, r.APKURLs)
		assert.Equal(t, "token secret", auth)
		assert.Equal(t, "GitHub", r.Source)
		assert.Empty(t, r.Warnings)
	})

	t.Run("prereleases when enabled", func(t *testing.T) {
		srv := githubServer(t, releases, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner/repo",
			"additionalSettings": settings(t, map[string]any{"includePrereleases": true}),
		}))
		assert.True(t, r.Passed)
		assert.Equal(t, "v2.1-beta", r.Version)
	})

	t.Run("apk filter and version extraction", func(t *testing.T) {
		srv := githubServer(t, releases, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner/repo", "preferredApkIndex": 3,
			"additionalSettings": settings(t, map[string]any{
				"apkFilterRegEx":         "arm64",
				"versionExtractionRegEx": `v(\d+\.\d+)`,
			}),
		}))
		assert.True(t, r.Passed)
		assert.Equal(t, "1.9", r.Version)
		assert.Equal(t, []string{"https://dl.example/app-arm64.apk"}, r.APKURLs)
		assert.Equal(t, []string{"preferredApkIndex=3 but only 1 APKs found"}, r.Warnings)
	})

	t.Run("inverted apk filter", func(t *testing.T) {
		srv := githubServer(t, releases, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner/repo",
			"additionalSettings": settings(t, map[string]any{"apkFilterRegEx": "arm64", "invertAPKFilter": true}),
		}))
		assert.Equal(t, []string{"https://dl.example/app-x86.apk"}, r.APKURLs)
	})

	t.Run("no fallback stops at the first release", func(t *testing.T) {
		srv := githubServer(t, releases, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner/repo",
			"additionalSettings": settings(t, map[string]any{"fallbackToOlderReleases": false, "apkFilterRegEx": "arm"}),
		}))
		assert.False(t, r.Passed)
		assert.Equal(t, "No releases with matching APK assets found (checked 4 releases, prereleases=off, apkFilter=arm)", r.Error)
	})

	t.Run("title filter", func(t *testing.T) {
		srv := githubServer(t, releases, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner/repo",
			"additionalSettings": settings(t, map[string]any{"filterReleaseTitlesByRegEx": "^Nightly"}),
		}))
		assert.False(t, r.Passed)
		assert.Contains(t, r.Error, "titleFilter=^Nightly")
	})

	t.Run("track only falls back to a tag", func(t *testing.T) {
		srv := githubServer(t, []ghRelease{{TagName: "v5"}}, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner/repo",
			"additionalSettings": settings(t, map[string]any{"trackOnly": true}),
		}))
		assert.True(t, r.Passed)
		assert.Equal(t, "v5", r.Version)
		assert.Equal(t, 0, r.APKCount)
	})

	t.Run("no releases", func(t *testing.T) {
		srv := githubServer(t, []ghRelease{}, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner/repo",
		}))
		assert.False(t, r.Passed)
		assert.Equal(t, "No releases found", r.Error)
	})

	t.Run("bad repo url", func(t *testing.T) {
		srv := githubServer(t, releases, nil)
		r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
			"name": "Example", "url": "https://github.com/owner",
		}))
		assert.False(t, r.Passed)
		assert.Contains(t, r.Error, "cannot parse owner/repo")
	})
}

func TestTest_GitHubRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
		"name": "Example", "url": "https://github.com/owner/repo",
	}))
	assert.False(t, r.Passed)
	assert.Equal(t, "GitHub API error: HTTP 403 Forbidden (rate limited - set GITHUB_TOKEN env var)", r.Error)
}

func TestTest_GitHubLowRateLimitWarns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-RateLimit-Remaining", "3")
		_ = json.NewEncoder(w).Encode([]ghRelease{{TagName: "v1", Assets: []ghAsset{apk("a.apk")}}})
	}))
	defer srv.Close()

	r := newTester(srv, "").Test(context.Background(), entry(t, map[string]any{
		"name": "Example", "url": "https://github.com/owner/repo",
	}))
	assert.True(t, r.Passed)
	assert.Equal(t, []string{"GitHub API rate limit low: 3 remaining"}, r.Warnings)
}

func TestTest_Codeberg(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/repos/owner/repo/releases" {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		_ = json.NewEncoder(w).Encode([]ghRelease{
			{TagName: "", Name: "2024.05", Assets: []ghAsset{apk("app.xapk")}},
		})
	}))
	defer srv.Close()

	tester := resolver.New(resolver.Options{Client: srv.Client()})
	r := tester.Test(context.Background(), entry(t, map[string]any{
		"name": "Forge", "url": srv.URL + "/owner/repo", "overrideSource": "Codeberg",
	}))
	assert.True(t, r.Passed, r.Error)
	assert.Equal(t, "2024.05", r.Version)
	assert.Equal(t, 1, r.APKCount)
	assert.Equal(t, "Codeberg", r.Source)
}

func TestTest_HTML(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
			<a href="/releases/1.0/">old</a>
			<a href="/releases/2.0/">new</a>
			<a href="/about">about</a>
		</body></html>`)
	})
	mux.HandleFunc("/releases/2.0/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		fmt.Fprint(w, `<a href="app-2.0-arm64.apk">arm</a><a href="app-2.0-x86.apk">x86</a><a href="readme.txt">readme</a>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	tester := resolver.New(resolver.Options{Client: srv.Client()})

	t.Run("intermediate links and version from last link", func(t *testing.T) {
		r := tester.Test(context.Background(), entry(t, map[string]any{
			"name": "Scraped", "url": srv.URL + "/", "overrideSource": "HTML",
			"additionalSettings": settings(t, map[string]any{
				"intermediateLink":       []any{map[string]any{"customLinkFilterRegex": `/releases/`}},
				"requestHeader":          []any{map[string]any{"requestHeader": "X-Test: yes"}},
				"versionExtractionRegEx": `app-([\d.]+)-`,
			}),
		}))
		require.True(t, r.Passed, r.Error)
		assert.Equal(t, "2.0", r.Version)
		assert.Equal(t, 2, r.APKCount)
		assert.Equal(t, srv.URL+"/releases/2.0/app-2.0-arm64.apk", r.APKURLs[0])
		assert.Empty(t, r.Warnings)
	})

	t.Run("pseudo version when nothing is extracted", func(t *testing.T) {
		r := tester.Test(context.Background(), entry(t, map[string]any{
			"name": "Scraped", "url": srv.URL + "/releases/2.0/", "overrideSource": "DirectAPKLink",
			"additionalSettings": settings(t, map[string]any{
				"requestHeader":                 []any{map[string]any{"requestHeader": "X-Test: yes"}},
				"defaultPseudoVersioningMethod": "partialAPKHash",
			}),
		}))
		require.True(t, r.Passed, r.Error)
		assert.Equal(t, "<pseudo:partialAPKHash>", r.Version)
	})

	t.Run("warns without any version", func(t *testing.T) {
		r := tester.Test(context.Background(), entry(t, map[string]any{
			"name": "Scraped", "url": srv.URL + "/releases/2.0/", "overrideSource": "HTML",
			"additionalSettings": settings(t, map[string]any{
				"requestHeader": []any{map[string]any{"requestHeader": "X-Test: yes"}},
			}),
		}))
		require.True(t, r.Passed, r.Error)
		assert.Equal(t, []string{"No version extracted (no regex match, no pseudo-method)"}, r.Warnings)
	})

	t.Run("no apk links", func(t *testing.T) {
		r := tester.Test(context.Background(), entry(t, map[string]any{
			"name": "Scraped", "url": srv.URL + "/", "overrideSource": "HTML",
		}))
		assert.False(t, r.Passed)
		assert.True(t, strings.HasPrefix(r.Error, "No APK links found on page ("+srv.URL+"/, 3 total links on page)"), r.Error)
	})

	t.Run("intermediate step without matches", func(t *testing.T) {
		r := tester.Test(context.Background(), entry(t, map[string]any{
			"name": "Scraped", "url": srv.URL + "/", "overrideSource": "HTML",
			"additionalSettings": settings(t, map[string]any{
				"intermediateLink": []any{map[string]any{"customLinkFilterRegex": "nothing-here"}},
			}),
		}))
		assert.False(t, r.Passed)
		assert.Contains(t, r.Error, "intermediate link step 0 found no matching links")
	})
}

func TestTest_UnsupportedSourceIsSkipped(t *testing.T) {
	r := resolver.New(resolver.Options{}).Test(context.Background(), entry(t, map[string]any{
		"name": "Store App", "id": "x", "url": "https://f-droid.org/packages/x",
	}))
	assert.True(t, r.Passed)
	assert.Equal(t, "FDroid", r.Source)
	assert.Equal(t, []string{"Skipped: source type 'FDroid' not yet supported"}, r.Warnings)
}

func TestTest_BrokenSettings(t *testing.T) {
	r := resolver.New(resolver.Options{}).Test(context.Background(), entry(t, map[string]any{
		"name": "X", "url": "https://github.com/a/b", "additionalSettings": "{oops",
	}))
	assert.False(t, r.Passed)
	assert.Equal(t, "Cannot parse additionalSettings JSON", r.Error)
}

func TestTestAll(t *testing.T) {
	apps := []catalog.Entry{
		entry(t, map[string]any{"name": "A", "url": "https://f-droid.org/packages/a"}),
		entry(t, map[string]any{"name": "B", "url": "https://f-droid.org/packages/b"}),
	}
	var seen []string
	results := resolver.New(resolver.Options{}).TestAll(context.Background(), apps, func(r resolver.Result) {
		seen = append(seen, r.AppName)
	})
	assert.Len(t, results, 2)
	assert.Equal(t, []string{"A", "B"}, seen)

	summary := resolver.Summarize(results)
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 2, summary.Passed)
	assert.Equal(t, 2, summary.Warned)
}

func TestFilter(t *testing.T) {
	apps := []catalog.Entry{
		entry(t, map[string]any{"id": "org.dolphin", "name": "Dolphin"}),
		entry(t, map[string]any{"id": "org.dolphin.mmj", "name": "Dolphin MMJR"}),
		entry(t, map[string]any{"id": "org.ppsspp", "name": "PPSSPP"}),
	}
	assert.Len(t, resolver.Filter{}.Apply(apps), 3)
	assert.Len(t, resolver.Filter{Name: "dolphin"}.Apply(apps), 2)

	byID := resolver.Filter{ID: "org.dolphin", Name: "ppsspp"}.Apply(apps)
	require.Len(t, byID, 1)
	assert.Equal(t, "Dolphin", byID[0].Name())
}

func TestNeedsGitHubToken(t *testing.T) {
	apps := []catalog.Entry{entry(t, map[string]any{"url": "https://github.com/a/b"})}
	assert.True(t, resolver.NeedsGitHubToken(apps, ""))
	assert.False(t, resolver.NeedsGitHubToken(apps, "t"))
	assert.Equal(t, 1, resolver.CountSource(apps, "GitHub"))
}
