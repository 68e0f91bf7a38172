package resolver

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
)

// extractLinks returns the href of every anchor in body, resolved against
// base. Hrefs that do not parse are skipped.
func extractLinks(body []byte, base string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	var links []string
	z := html.NewTokenizer(bytes.NewReader(body))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF at the end of the document; anything else is a
			// truncated page and the links so far still count.
			return links
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := z.TagName()
			if string(name) != "a" || !hasAttr {
				continue
			}
			for {
				key, val, more := z.TagAttr()
				if string(key) == "href" && len(val) > 0 {
					if ref, err := url.Parse(strings.TrimSpace(string(val))); err == nil {
						links = append(links, baseURL.ResolveReference(ref).String())
					}
				}
				if !more {
					break
				}
			}
		}
	}
}

// followIntermediateLinks walks the intermediateLink steps from start,
// taking the last link after each step's filter and sort.
func followIntermediateLinks(ctx context.Context, f *fetcher, start string, steps []Settings, headers map[string]string) (string, error) {
	current := start
	for i, step := range steps {
		resp, err := f.get(ctx, current, headers)
		if err != nil {
			return current, fmt.Errorf("failed to fetch intermediate URL (%s): %w", current, err)
		}

		pattern := step.String("customLinkFilterRegex")
		links, err := filterByPattern(extractLinks(resp.body, resp.finalURL), pattern)
		if err != nil {
			return current, fmt.Errorf("intermediateLink[%d].customLinkFilterRegex: %w", i, err)
		}
		links = sortLinks(links, step)
		if len(links) == 0 {
			return current, fmt.Errorf("intermediate link step %d found no matching links (url=%s, regex=%q)", i, current, pattern)
		}
		current = links[len(links)-1]
	}
	return current, nil
}

func (t *Tester) testHTML(ctx context.Context, f *fetcher, e catalog.Entry, s Settings, r Result) Result {
	headers := s.RequestHeaders()

	current, err := followIntermediateLinks(ctx, f, e.URL(), s.Objects("intermediateLink"), headers)
	if err != nil {
		return r.fail(err.Error())
	}

	resp, err := f.get(ctx, current, headers)
	if err != nil {
		return r.fail(fmt.Sprintf("Failed to fetch final URL (%s): %v", current, err))
	}

	links := extractLinks(resp.body, resp.finalURL)
	custom := s.String("customLinkFilterRegex")
	var apks []string
	if custom != "" {
		if apks, err = filterByPattern(links, custom); err != nil {
			return r.fail("customLinkFilterRegex: " + err.Error())
		}
	} else {
		for _, l := range links {
			if isAPK(l) {
				apks = append(apks, l)
			}
		}
	}
	if apks, err = applyAPKFilter(apks, s); err != nil {
		return r.fail(err.Error())
	}

	if len(apks) == 0 && !s.Bool("trackOnly", false) {
		return r.fail(fmt.Sprintf("No APK links found on page (%s%s, %d total links on page)",
			current,
			filterContext("customLinkFilterRegex", custom, "apkFilterRegEx", s.String("apkFilterRegEx")),
			len(links)))
	}

	version := ""
	if s.String("versionExtractionRegEx") != "" {
		text := ""
		switch {
		case s.Bool("versionExtractWholePage", false):
			text = string(resp.body)
		case len(apks) > 0:
			text = apks[len(apks)-1]
		}
		var warning string
		version, warning = extractVersion(text, s)
		if warning != "" {
			r.warn(warning)
		}
	}
	if version == "" {
		if method := s.String("defaultPseudoVersioningMethod"); method != "" {
			version = "<pseudo:" + method + ">"
		} else {
			r.warn("No version extracted (no regex match, no pseudo-method)")
		}
	}

	if w := apkIndexWarning(e, len(apks)); w != "" {
		r.warn(w)
	}

	r.Passed = true
	r.Version = version
	r.APKCount = len(apks)
	if len(apks) > maxStoredAPKURLs {
		apks = apks[:maxStoredAPKURLs]
	}
	if apks != nil {
		r.APKURLs = apks
	}
	return r
}
