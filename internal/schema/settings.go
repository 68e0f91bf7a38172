package schema

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed settings.cue
var settingsSchemaCUE []byte

// IntermediateLinkKey holds the list of HTML intermediate link steps.
const IntermediateLinkKey = "intermediateLink"

// RegexSettingsKeys are the additionalSettings keys holding regex patterns.
var RegexSettingsKeys = []string{
	"filterReleaseTitlesByRegEx",
	"filterReleaseNotesByRegEx",
	"versionExtractionRegEx",
	"apkFilterRegEx",
	"customLinkFilterRegex",
	"zippedApkFilterRegEx",
}

// IntermediateLinkRegexKey is the regex key inside each intermediate link step.
const IntermediateLinkRegexKey = "customLinkFilterRegex"

// CommonSettingsKeys apply to every source.
var CommonSettingsKeys = []string{
	"trackOnly",
	"versionExtractionRegEx",
	"matchGroupToUse",
	"versionDetection",
	"releaseDateAsVersion",
	"useVersionCodeAsOSVersion",
	"apkFilterRegEx",
	"invertAPKFilter",
	"autoApkFilterByArch",
	"appName",
	"appAuthor",
	"shizukuPretendToBeGooglePlay",
	"allowInsecure",
	"exemptFromBackgroundUpdates",
	"skipUpdateNotifications",
	"about",
	"refreshBeforeDownload",
}

var releaseSettingsKeys = []string{
	"includePrereleases",
	"fallbackToOlderReleases",
	"filterReleaseTitlesByRegEx",
	"filterReleaseNotesByRegEx",
	"verifyLatestTag",
	"sortMethodChoice",
	"useLatestAssetDateAsReleaseDate",
	"releaseTitleAsVersion",
	"includeZips",
	"zippedApkFilterRegEx",
}

var scrapeSettingsKeys = []string{
	"intermediateLink",
	"customLinkFilterRegex",
	"filterByLinkText",
	"skipSort",
	"reverseSort",
	"sortByLastLinkSegment",
	"versionExtractWholePage",
	"requestHeader",
	"defaultPseudoVersioningMethod",
	"supportFixedAPKURL",
}

// SourceSettingsKeys lists keys that only make sense for particular sources.
var SourceSettingsKeys = map[string][]string{
	SourceGitHub:        releaseSettingsKeys,
	SourceCodeberg:      releaseSettingsKeys,
	SourceGitLab:        {"fallbackToOlderReleases", "filterReleaseTitlesByRegEx", "filterReleaseNotesByRegEx", "sortMethodChoice"},
	SourceFDroid:        {"filterVersionsByRegEx", "trySelectingSuggestedVersionCode", "autoSelectHighestVersionCode"},
	SourceIzzyOnDroid:   {"filterVersionsByRegEx", "trySelectingSuggestedVersionCode", "autoSelectHighestVersionCode"},
	SourceHTML:          scrapeSettingsKeys,
	SourceDirectAPKLink: scrapeSettingsKeys,
}

// DeprecatedSettingsKey pairs a deprecated key with its replacement.
type DeprecatedSettingsKey struct {
	Key         string
	Replacement string
}

// DeprecatedSettingsKeys are still accepted by the app but should be migrated.
var DeprecatedSettingsKeys = []DeprecatedSettingsKey{
	{Key: "dontSortReleasesList", Replacement: "sortMethodChoice"},
	{Key: "sortByFileNamesNotLinks", Replacement: "sortByLastLinkSegment"},
}

// ValidSettingsKeys returns the keys valid for the given source: common keys,
// deprecated keys, and the source's own keys.
func ValidSettingsKeys(source string) map[string]bool {
	valid := make(map[string]bool)
	for _, k := range CommonSettingsKeys {
		valid[k] = true
	}
	for _, d := range DeprecatedSettingsKeys {
		valid[d.Key] = true
	}
	for _, k := range SourceSettingsKeys[source] {
		valid[k] = true
	}
	return valid
}

// SettingsKeyOwners returns the sources, other than except, that own key.
func SettingsKeyOwners(key, except string) []string {
	var owners []string
	for source, keys := range SourceSettingsKeys {
		if source != except && slices.Contains(keys, key) {
			owners = append(owners, source)
		}
	}
	sort.Strings(owners)
	return owners
}

// SettingsViolation is one kind mismatch reported by the settings schema.
type SettingsViolation struct {
	// Path is the dotted path inside additionalSettings.
	Path string

	// Message is the schema evaluator's description.
	Message string
}

// SettingsSchema checks decoded additionalSettings against the embedded CUE
// definition. It is not safe for concurrent use.
type SettingsSchema struct {
	ctx *cue.Context
	def cue.Value
}

// NewSettingsSchema compiles the embedded additionalSettings schema.
func NewSettingsSchema() (*SettingsSchema, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(settingsSchemaCUE, cue.Filename("settings.cue"))
	if schema.Err() != nil {
		return nil, fmt.Errorf("compiling settings schema: %w", schema.Err())
	}

	def := schema.LookupPath(cue.ParsePath("#AdditionalSettings"))
	if !def.Exists() {
		return nil, fmt.Errorf("settings schema: #AdditionalSettings not defined")
	}

	return &SettingsSchema{ctx: ctx, def: def}, nil
}

// Check validates decoded settings (as produced by encoding/json into
// map[string]any) and returns the first violation found at each path.
func (s *SettingsSchema) Check(settings map[string]any) []SettingsViolation {
	value := s.ctx.Encode(settings)
	if err := value.Err(); err != nil {
		return []SettingsViolation{{Message: err.Error()}}
	}

	unified := s.def.Unify(value)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var violations []SettingsViolation
	seen := make(map[string]bool)
	for _, e := range cueerrors.Errors(err) {
		format, args := e.Msg()
		v := SettingsViolation{
			Path:    strings.Join(e.Path(), "."),
			Message: fmt.Sprintf(format, args...),
		}
		if seen[v.Path] {
			continue
		}
		seen[v.Path] = true
		violations = append(violations, v)
	}
	sort.SliceStable(violations, func(i, j int) bool {
		return violations[i].Path < violations[j].Path
	})
	return violations
}
