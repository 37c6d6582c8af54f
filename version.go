package statuml

import _ "embed"

// Version is the release version, embedded from the VERSION file.
// Consumers should strings.TrimSpace it before display.
//
//go:embed VERSION
var Version string
