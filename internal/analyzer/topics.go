package analyzer

import (
	"regexp"
	"strings"
)

// KeywordPattern pairs a human-readable label with the pattern that
// detects it in prompt text.
type KeywordPattern struct {
	Label   string
	Pattern *regexp.Regexp
}

// TopicPatterns classify what a prompt is about. Order matters only for
// output ordering; every matching label is reported.
var TopicPatterns = []KeywordPattern{
	{"Bug Fix", regexp.MustCompile(`(?i)\b(fix|bug|error|issue|broken|crash|fail)`)},
	{"New Feature", regexp.MustCompile(`(?i)\b(add|create|implement|build|new feature|feature)`)},
	{"Refactoring", regexp.MustCompile(`(?i)\b(refactor|clean|reorganize|restructure|improve)`)},
	{"Testing", regexp.MustCompile(`(?i)\b(test|spec|coverage|jest|pytest|unittest)`)},
	{"Documentation", regexp.MustCompile(`(?i)\b(doc|readme|comment|jsdoc|explain)`)},
	{"Styling", regexp.MustCompile(`(?i)\b(css|style|design|ui|layout|theme)`)},
	{"API Work", regexp.MustCompile(`(?i)\b(api|endpoint|route|rest|graphql|fetch)`)},
	{"Database", regexp.MustCompile(`(?i)\b(database|db|sql|mongo|postgres|query|migration)`)},
	{"DevOps", regexp.MustCompile(`(?i)\b(deploy|docker|ci|cd|build|pipeline|kubernetes)`)},
	{"Security", regexp.MustCompile(`(?i)\b(auth|security|permission|token|encrypt)`)},
	{"Performance", regexp.MustCompile(`(?i)\b(optimize|performance|speed|cache|lazy)`)},
}

// TechPatterns spot technology mentions.
var TechPatterns = []KeywordPattern{
	{"React", regexp.MustCompile(`(?i)\breact\b`)},
	{"Node.js", regexp.MustCompile(`(?i)\b(node|express|npm)\b`)},
	{"TypeScript", regexp.MustCompile(`(?i)\btypescript|\.tsx?\b`)},
	{"Python", regexp.MustCompile(`(?i)\b(python|pip|django|flask)\b`)},
	{"SQL", regexp.MustCompile(`(?i)\b(sql|postgres|mysql|sqlite)\b`)},
	{"Docker", regexp.MustCompile(`(?i)\bdocker\b`)},
	{"Git", regexp.MustCompile(`(?i)\b(git|commit|branch|merge|pr)\b`)},
	{"CSS", regexp.MustCompile(`(?i)\b(css|scss|tailwind|styled)`)},
	{"Testing", regexp.MustCompile(`(?i)\b(jest|pytest|test|spec)\b`)},
}

// taskPhrasePattern matches a prompt that reads like a concrete task:
// an action verb followed by a reasonable amount of detail.
var taskPhrasePattern = regexp.MustCompile(`(?i)^(add|create|fix|update|implement|build|make|write|refactor|test|debug|deploy|setup|configure|install|remove|delete|change|modify)\s+.{10,60}`)

// DetectTopics returns every topic label whose pattern matches the text.
func DetectTopics(text string) []string {
	return matchLabels(TopicPatterns, text)
}

// DetectTechnologies returns every technology label matching the text.
func DetectTechnologies(text string) []string {
	return matchLabels(TechPatterns, text)
}

func matchLabels(patterns []KeywordPattern, text string) []string {
	var labels []string
	for _, p := range patterns {
		if p.Pattern.MatchString(text) {
			labels = append(labels, p.Label)
		}
	}
	return labels
}

// TaskPhrase extracts an action phrase from a prompt, or "" when the
// prompt doesn't open with one.
func TaskPhrase(text string) string {
	return strings.TrimSpace(taskPhrasePattern.FindString(text))
}

// DetectHistoryTopic assigns a single coarse topic to a history prompt.
// First match in the chain wins.
func DetectHistoryTopic(text string) string {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "bug", "fix", "error"):
		return "Debugging"
	case strings.Contains(lower, "test"):
		return "Testing"
	case containsAny(lower, "create", "new", "add"):
		return "Feature development"
	case containsAny(lower, "refactor", "clean"):
		return "Refactoring"
	case containsAny(lower, "explain", "how", "what"):
		return "Learning/Questions"
	case containsAny(lower, "review", "pr"):
		return "Code review"
	case containsAny(lower, "database", "sql"):
		return "Database work"
	case containsAny(lower, "deploy", "docker"):
		return "DevOps"
	default:
		return "General coding"
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
