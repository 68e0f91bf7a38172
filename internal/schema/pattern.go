package schema

import (
	"time"

	"github.com/dlclark/regexp2"
)

// PatternMatchTimeout bounds a single match so a pathological pattern cannot
// hang a run.
const PatternMatchTimeout = 2 * time.Second

// CompilePattern compiles a regex-bearing settings value with the
// backtracking dialect used for filters (lookarounds and backreferences
// allowed, as in the app's own engine).
func CompilePattern(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = PatternMatchTimeout
	return re, nil
}
