/*
Package dsl provides a Go DSL for programmatically constructing instrument
state machine projects.

It allows developers to define topics using a type-safe, fluent builder
pattern instead of hand-assembling snapshot structs or JSON files. This is
particularly useful for tests, seed data and dynamic project generation.

States are addressed by label; the topic entry node is addressed with
dsl.Start. Transition kinds are derived from the endpoints when the project
is built, exactly as they would be on snapshot load.

Example usage:

	package main

	import (
		"github.com/statuml/statuml/pkg/dsl"
		"github.com/statuml/statuml/pkg/domain"
	)

	func main() {
		b := dsl.New("SETT", "R1")

		root := b.Topic("ROOT", domain.TopicRoot)
		root.State("Ready")
		root.State("Completed").EndsPositive()
		root.Connect(dsl.Start, "Ready", "MSG", "B2B")
		root.Connect("Ready", "Completed", "DONE", "C2C")

		project := b.Build()
		// ... pass project to statuml.New("", statuml.WithProject(project))
		_ = project
	}
*/
package dsl
