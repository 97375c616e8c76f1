package main

import (
	"fmt"
	"regexp"
)

// CacheRule maps paths matching Pattern to a max-age in seconds.
type CacheRule struct {
	Pattern string `yaml:"pattern"`
	MaxAge  int    `yaml:"max_age"`
}

type compiledRule struct {
	pattern *regexp.Regexp
	maxAge  int
}

// CachePolicy resolves the Cache-Control header for uploaded paths. Rules
// are tried in configuration order and the first match wins.
type CachePolicy struct {
	rules         []compiledRule
	defaultMaxAge int
}

func NewCachePolicy(rules []CacheRule, defaultMaxAge int) (*CachePolicy, error) {
	policy := &CachePolicy{
		rules:         make([]compiledRule, 0, len(rules)),
		defaultMaxAge: defaultMaxAge,
	}
	for _, rule := range rules {
		re, compileErr := regexp.Compile("(?i)" + rule.Pattern)
		if compileErr != nil {
			return nil, fmt.Errorf("invalid cache_control rule %q: %w", rule.Pattern, compileErr)
		}
		policy.rules = append(policy.rules, compiledRule{pattern: re, maxAge: rule.MaxAge})
	}

	return policy, nil
}

func (p *CachePolicy) Resolve(path string) string {
	for _, rule := range p.rules {
		if rule.pattern.MatchString(path) {
			return cacheControlHeader(rule.maxAge)
		}
	}
	return cacheControlHeader(p.defaultMaxAge)
}

func cacheControlHeader(maxAge int) string {
	return fmt.Sprintf("public,max-age=%d", maxAge)
}
