package domain

import "errors"

// ErrTopicNotFound is returned when a topic ID cannot be found in a project.
var ErrTopicNotFound = errors.New("topic not found")

// ErrProjectNotFound is returned when a project ID cannot be found in a store.
var ErrProjectNotFound = errors.New("project not found")

// ErrNoRootTopic is returned when an operation requires at least one root topic.
var ErrNoRootTopic = errors.New("project has no root topic")

// ErrProtectedNode is returned when a mutation targets a start node, which is
// structurally fixed and never deletable.
var ErrProtectedNode = errors.New("start nodes cannot be deleted")
