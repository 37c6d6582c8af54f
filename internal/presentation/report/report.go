// Package report renders validation results as Markdown for terminal output.
package report

import (
	"fmt"
	"strings"

	"github.com/statuml/statuml/internal/validator"
)

// Markdown renders the issue list as a Markdown document. Findings are
// grouped by topic, project-level findings first, errors before warnings
// within each group.
func Markdown(issues []validator.Issue) string {
	var b strings.Builder

	b.WriteString("# Validation Report\n\n")

	if len(issues) == 0 {
		b.WriteString("No issues found.\n")
		return b.String()
	}

	errs, warns := 0, 0
	for _, issue := range issues {
		if issue.Level == validator.LevelError {
			errs++
		} else {
			warns++
		}
	}
	b.WriteString(fmt.Sprintf("**%d error(s), %d warning(s)**\n\n", errs, warns))

	order, grouped := groupByTopic(issues)
	for _, topicID := range order {
		if topicID == "" {
			b.WriteString("## Project\n\n")
		} else {
			b.WriteString(fmt.Sprintf("## Topic %s\n\n", topicID))
		}
		for _, issue := range grouped[topicID] {
			b.WriteString(fmt.Sprintf("- %s %s\n", marker(issue.Level), issue.Message))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func marker(level validator.Level) string {
	if level == validator.LevelError {
		return "**ERROR**"
	}
	return "*WARN*"
}

// groupByTopic splits issues per topic, keeping the project-level group
// (empty topic id) first and preserving first-seen topic order. Errors sort
// before warnings inside a group, otherwise input order is stable.
func groupByTopic(issues []validator.Issue) ([]string, map[string][]validator.Issue) {
	order := []string{""}
	grouped := map[string][]validator.Issue{"": nil}

	for _, issue := range issues {
		if _, ok := grouped[issue.TopicID]; !ok {
			order = append(order, issue.TopicID)
		}
		grouped[issue.TopicID] = append(grouped[issue.TopicID], issue)
	}

	if len(grouped[""]) == 0 {
		order = order[1:]
		delete(grouped, "")
	}

	for topicID, group := range grouped {
		sorted := make([]validator.Issue, 0, len(group))
		for _, issue := range group {
			if issue.Level == validator.LevelError {
				sorted = append(sorted, issue)
			}
		}
		for _, issue := range group {
			if issue.Level != validator.LevelError {
				sorted = append(sorted, issue)
			}
		}
		grouped[topicID] = sorted
	}

	return order, grouped
}
