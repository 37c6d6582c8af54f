package report_test

import (
	"strings"
	"testing"

	"github.com/statuml/statuml/internal/presentation/report"
	"github.com/statuml/statuml/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestMarkdown_NoIssues(t *testing.T) {
	out := report.Markdown(nil)
	assert.Contains(t, out, "# Validation Report")
	assert.Contains(t, out, "No issues found.")
}

func TestMarkdown_GroupsByTopic(t *testing.T) {
	issues := []validator.Issue{
		{Level: validator.LevelWarning, Message: "state is unreachable", TopicID: "DELIVERY"},
		{Level: validator.LevelError, Message: "instrument type is required"},
		{Level: validator.LevelError, Message: "transition has no message type", TopicID: "DELIVERY"},
	}

	out := report.Markdown(issues)

	assert.Contains(t, out, "**2 error(s), 1 warning(s)**\n")
	assert.Contains(t, out, "## Project")
	assert.Contains(t, out, "## Topic DELIVERY")

	// Project-level findings come first, and errors lead their group.
	project := strings.Index(out, "## Project")
	topic := strings.Index(out, "## Topic DELIVERY")
	assert.Less(t, project, topic)

	errLine := strings.Index(out, "transition has no message type")
	warnLine := strings.Index(out, "state is unreachable")
	assert.Less(t, errLine, warnLine)
}
