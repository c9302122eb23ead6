package vcsquery

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// AttributeRule is one non-comment, non-blank line of a .gitattributes
// file: a glob pattern and the filter value it assigns, if any.
type AttributeRule struct {
	Pattern gitignore.Pattern
	Filter  string
}

// ParseGitattributes reads .gitattributes content and returns every rule
// that sets a filter= attribute. Lines without a filter clause are
// ignored; .gitattributes glob syntax is identical to .gitignore's, so
// each pattern is parsed with go-git's existing gitignore matcher rather
// than a bespoke one.
func ParseGitattributes(content []byte, domain []string) []AttributeRule {
	var rules []AttributeRule
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		glob := fields[0]
		filter := ""
		for _, attr := range fields[1:] {
			if name, ok := strings.CutPrefix(attr, "filter="); ok {
				filter = name
			}
		}
		if filter == "" {
			continue
		}
		rules = append(rules, AttributeRule{
			Pattern: gitignore.ParsePattern(glob, domain),
			Filter:  filter,
		})
	}
	return rules
}

// MatchRules returns the filter value assigned to path by the last
// matching rule in rules, mirroring .gitattributes' last-match-wins
// semantics, or "" if no rule matches.
func MatchRules(rules []AttributeRule, path string, isDir bool) string {
	parts := strings.Split(path, "/")
	filter := ""
	for _, rule := range rules {
		// go-git reports a match of an ordinary (non-negated) pattern as
		// Exclude; Include is reserved for '!'-prefixed patterns.
		if result := rule.Pattern.Match(parts, isDir); result == gitignore.Exclude {
			filter = rule.Filter
		}
	}
	return filter
}
