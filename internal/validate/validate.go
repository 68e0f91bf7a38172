package validate

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/obtainium-emulation-pack/oep/internal/catalog"
	"github.com/obtainium-emulation-pack/oep/internal/output"
	"github.com/obtainium-emulation-pack/oep/internal/schema"
)

// Validator checks documents against the registry.
type Validator struct {
	settings *schema.SettingsSchema
}

// New returns a Validator with the additionalSettings schema compiled.
func New() (*Validator, error) {
	settings, err := schema.NewSettingsSchema()
	if err != nil {
		return nil, err
	}
	return &Validator{settings: settings}, nil
}

// Validate checks doc with a freshly built Validator.
func Validate(doc *catalog.Document) (*Report, error) {
	v, err := New()
	if err != nil {
		return nil, err
	}
	return v.Validate(doc), nil
}

// Validate runs every per-entry check, then the cross-entry duplicate check.
// It never stops at the first problem.
func (v *Validator) Validate(doc *catalog.Document) *Report {
	r := &Report{Findings: []Finding{}, Checked: len(doc.Apps)}
	for i, e := range doc.Apps {
		v.checkEntry(r, i, e)
	}
	checkDuplicates(r, doc.Apps)
	return r
}

// entryCheck collects findings for one entry.
type entryCheck struct {
	r      *Report
	entry  catalog.Entry
	name   string
	index  int
	errors int
}

func (c *entryCheck) errorf(field, format string, args ...any) {
	c.errors++
	c.r.add(SeverityError, c.name, c.index, field, format, args...)
}

func (c *entryCheck) warnf(field, format string, args ...any) {
	c.r.add(SeverityWarning, c.name, c.index, field, format, args...)
}

func (v *Validator) checkEntry(r *Report, index int, e catalog.Entry) {
	c := &entryCheck{r: r, entry: e, name: e.Identifier(index), index: index}
	log := output.EntryLogger(c.name)

	if !e.IsObject() {
		c.errorf("", "entry must be an object, got %s", e.Kind())
		return
	}

	checkStructure(c)
	if c.errors > 0 {
		log.Debug("skipping remaining checks", "errors", c.errors)
		return
	}

	checkURL(c)
	checkMeta(c)
	checkSource(c)
	checkCategories(c)
	v.checkSettings(c)
	checkApkIndex(c)
}

// checkStructure verifies required fields and the kinds of known fields.
// preferredApkIndex is left to checkApkIndex.
func checkStructure(c *entryCheck) {
	for _, name := range schema.RequiredFields() {
		if !c.entry.Has(name) {
			c.errorf(name, "missing required field %q", name)
		}
	}

	for _, f := range c.entry.Object {
		spec, ok := schema.LookupField(f.Key)
		if !ok {
			if suggestion, found := schema.SuggestField(f.Key); found {
				c.warnf(f.Key, "unrecognized field %q, did you mean %q?", f.Key, suggestion)
			} else {
				c.warnf(f.Key, "unrecognized field %q", f.Key)
			}
			continue
		}
		if f.Key == schema.FieldPreferredApkIndex {
			continue
		}
		if kind := schema.KindOf(f.Value); !spec.Accepts(kind) {
			c.errorf(f.Key, "must be %s, got %s", spec.KindNames(), kind)
			continue
		}
		if spec.Required && string(f.Value) == `""` {
			c.errorf(f.Key, "must not be empty")
		}
	}

	if raw, ok := c.entry.Get(schema.FieldCategories); ok && schema.KindOf(raw) == schema.KindArray {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil {
			for i, item := range items {
				if kind := schema.KindOf(item); kind != schema.KindString {
					c.errorf(fmt.Sprintf("%s[%d]", schema.FieldCategories, i), "must be string, got %s", kind)
				}
			}
		}
	}
}

func checkURL(c *entryCheck) {
	raw := c.entry.URL()
	u, err := url.Parse(raw)
	if err != nil {
		c.errorf(schema.FieldURL, "invalid URL: %v", err)
		return
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		c.errorf(schema.FieldURL, "URL %q must use http or https", raw)
		return
	}
	if u.Host == "" {
		c.errorf(schema.FieldURL, "URL %q has no host", raw)
	}
}

func checkMeta(c *entryCheck) {
	meta, ok := c.entry.Meta()
	if !ok {
		return
	}
	for _, f := range meta {
		field := schema.FieldMeta + "." + f.Key
		key, known := schema.LookupMetaKey(f.Key)
		if !known {
			if suggestion, found := schema.SuggestMetaKey(f.Key); found {
				c.errorf(field, "unrecognized meta key %q, did you mean %q?", f.Key, suggestion)
			} else {
				c.errorf(field, "unrecognized meta key %q (valid: %s)", f.Key, strings.Join(schema.MetaKeyNames(), ", "))
			}
			continue
		}
		if kind := schema.KindOf(f.Value); !key.Accepts(kind) {
			c.errorf(field, "must be %s, got %s", key.KindNames(), kind)
		}
	}
}

func checkSource(c *entryCheck) {
	detected := schema.DetectSource(c.entry.URL())

	source, ok := c.entry.StringValue(schema.FieldOverrideSource)
	if !ok {
		if detected != "" {
			c.warnf(schema.FieldOverrideSource, "not set, %s detected from url", detected)
		} else {
			c.warnf(schema.FieldOverrideSource, "not set and no source could be detected from url")
		}
		return
	}

	if !schema.IsKnownSource(source) {
		for _, known := range schema.Sources() {
			if strings.EqualFold(known, source) {
				c.warnf(schema.FieldOverrideSource, "unknown source %q, did you mean %q?", source, known)
				return
			}
		}
		c.warnf(schema.FieldOverrideSource, "unknown source %q", source)
		return
	}

	if detected != "" && detected != source && !schema.IsScrapeSource(source) {
		c.warnf(schema.FieldOverrideSource, "source %q does not match url host (%s)", source, detected)
	}
}

func checkCategories(c *entryCheck) {
	for _, category := range c.entry.Categories() {
		if !schema.IsKnownCategory(category) {
			c.warnf(schema.FieldCategories, "unknown category %q", category)
		}
	}
}

func (v *Validator) checkSettings(c *entryCheck) {
	settings, form, err := c.entry.Settings()
	if err != nil {
		c.errorf(schema.FieldAdditionalSettings, "%v", err)
		return
	}
	if form == catalog.SettingsAbsent {
		return
	}

	prefix := schema.FieldAdditionalSettings + "."

	for _, key := range schema.RegexSettingsKeys {
		checkPattern(c, prefix+key, settings[key])
	}
	if links, ok := settings[schema.IntermediateLinkKey].([]any); ok {
		for i, link := range links {
			step, ok := link.(map[string]any)
			if !ok {
				continue
			}
			field := fmt.Sprintf("%s%s[%d].%s", prefix, schema.IntermediateLinkKey, i, schema.IntermediateLinkRegexKey)
			checkPattern(c, field, step[schema.IntermediateLinkRegexKey])
		}
	}

	if v.settings != nil {
		for _, violation := range v.settings.Check(settings) {
			field := schema.FieldAdditionalSettings
			if violation.Path != "" {
				field = prefix + violation.Path
			}
			c.errorf(field, "%s", violation.Message)
		}
	}

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, d := range schema.DeprecatedSettingsKeys {
		if _, ok := settings[d.Key]; ok {
			c.warnf(prefix+d.Key, "deprecated, use %s", d.Replacement)
		}
	}

	source := c.entry.Source()
	valid := schema.ValidSettingsKeys(source)
	for _, k := range keys {
		if valid[k] {
			continue
		}
		if owners := schema.SettingsKeyOwners(k, source); len(owners) > 0 {
			c.warnf(prefix+k, "only applies to %s sources, this app resolves via %s", strings.Join(owners, "/"), source)
		}
	}
}

func checkPattern(c *entryCheck, field string, value any) {
	pattern, ok := value.(string)
	if !ok || pattern == "" {
		return
	}
	if _, err := schema.CompilePattern(pattern); err != nil {
		c.errorf(field, "invalid regex %q: %v", pattern, err)
	}
}

func checkApkIndex(c *entryCheck) {
	raw, ok := c.entry.Get(schema.FieldPreferredApkIndex)
	if !ok {
		return
	}
	if schema.KindOf(raw) == schema.KindNumber {
		if n, err := strconv.ParseInt(string(raw), 10, 64); err == nil && n >= 0 {
			return
		}
	}
	c.errorf(schema.FieldPreferredApkIndex, "must be a non-negative integer, got %s", raw)
}
