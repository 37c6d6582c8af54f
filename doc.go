/*
Package statuml compiles instrument state machine projects into PlantUML
state diagrams.

A project describes one financial instrument as a set of topics, each topic
being a small message-driven state machine. The library derives everything
presentational from the stored structure: stable identifiers from labels,
transition kinds from their endpoint nodes, and fork cross-products at render
time. Nothing derived is persisted, so a snapshot can never disagree with
itself.

# Concept

The package follows a Hexagonal Architecture: the domain model and the
compilation pipeline are decoupled from adapters (file snapshots, Redis,
HTTP, MCP). The Engine in this package is the facade consumers embed; the
cmd/statuml binary and the server adapters are thin shells over it.

# Key Features

  - Deterministic rendering: the same snapshot always produces byte-identical
    PlantUML output.
  - Derived identity: state aliases and transition kinds are recomputed from
    the graph, never stored.
  - Validation: structural and vocabulary checks with error/warning levels;
    exports are refused while errors remain.
  - Legacy migration: snapshots written by older builders are normalized on
    load.

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/statuml/statuml"
	)

	func main() {
		eng, err := statuml.New("./settlement.json")
		if err != nil {
			log.Fatal(err)
		}

		for _, issue := range eng.Validate() {
			fmt.Println(issue.Level, issue.Message)
		}

		text, err := eng.CompletePuml()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Print(text)
	}
*/
package statuml
