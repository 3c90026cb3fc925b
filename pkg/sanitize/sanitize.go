package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// messagePolicy allows basic formatting but removes dangerous markup
var messagePolicy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("b", "i", "u", "strong", "em", "p", "br")
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}()

// patterns that always mean the content is hostile, checked before any stripping
var maliciousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script\b[^<]*(?:(?:[^<]|<[^/])*)</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)\bon\w+\s*=`),
	regexp.MustCompile(`(?is)<iframe\b`),
	regexp.MustCompile(`(?is)<object\b`),
	regexp.MustCompile(`(?is)<embed\b`),
}

var (
	usernameDropRe  = regexp.MustCompile(`[<>'"&]`)
	usernameAllowRe = regexp.MustCompile(`[^\w\s\-_.@]`)
	textDropRe      = regexp.MustCompile(`[<>'"&]`)
)

// ContainsMaliciousContent report whether content matches a known dangerous pattern
func ContainsMaliciousContent(content string) bool {
	if content == "" {
		return false
	}
	for _, pattern := range maliciousPatterns {
		if pattern.MatchString(content) {
			return true
		}
	}
	return false
}

// MessageContent strip message markup down to the formatting allow-list
func MessageContent(content string) string {
	if content == "" {
		return ""
	}
	return strings.TrimSpace(messagePolicy.Sanitize(content))
}

// Username keep alphanumerics, spaces and basic punctuation, capped at 50 runes
func Username(username string) string {
	if username == "" {
		return ""
	}
	cleaned := usernameDropRe.ReplaceAllString(username, "")
	cleaned = usernameAllowRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	runes := []rune(cleaned)
	if len(runes) > 50 {
		return string(runes[:50])
	}
	return cleaned
}

// TextInput sanitize free text such as search queries, capped at 200 runes
func TextInput(input string) string {
	if input == "" {
		return ""
	}
	cleaned := strings.TrimSpace(textDropRe.ReplaceAllString(input, ""))

	runes := []rune(cleaned)
	if len(runes) > 200 {
		return string(runes[:200])
	}
	return cleaned
}
