package statuml_test

import (
	"fmt"
	"log"

	"github.com/statuml/statuml"
	"github.com/statuml/statuml/pkg/domain"
)

// ExampleNew_project demonstrates building a project in memory and rendering
// it, without touching the file system.
func ExampleNew_project() {
	// 1. Build a minimal root topic: entry -> Ready -> Completed (positive end).
	topic := domain.NewTopic("ROOT", domain.TopicRoot)
	ready := domain.NewUserState("Ready")
	completed := domain.NewUserState("Completed")
	completed.TopicEndKind = domain.TopicEndPositive
	topic.Data.AddState(ready)
	topic.Data.AddState(completed)
	topic.Data.Connect(topic.Data.StartNode().ID, ready.ID, "MSG", "B2B")
	topic.Data.Connect(ready.ID, completed.ID, "DONE", "C2C")

	project := &domain.Project{
		Instrument: domain.Instrument{Type: "SETT", Revision: "R1"},
		Topics:     []*domain.Topic{topic},
	}

	// 2. Initialize the engine with the in-memory project.
	// Note: the path is empty because we are providing the project directly.
	engine, err := statuml.New("", statuml.WithProject(project))
	if err != nil {
		log.Fatal(err)
	}

	// 3. Render the topic diagram.
	text, err := engine.TopicPuml("ROOT")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(text)
}
