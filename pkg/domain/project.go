package domain

// Project aggregates one Instrument and its ordered list of Topics.
// SelectedTopicID is a UI cursor carried through persistence; the compiler
// ignores it.
type Project struct {
	Instrument      Instrument `json:"instrument" mapstructure:"instrument"`
	Topics          []*Topic   `json:"topics" mapstructure:"topics"`
	SelectedTopicID string     `json:"selectedTopicId,omitempty" mapstructure:"selectedTopicId"`
}

// Topic returns the topic with the given id, or nil.
func (p *Project) Topic(id string) *Topic {
	for _, t := range p.Topics {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// RootTopics returns the root topics in stored order.
func (p *Project) RootTopics() []*Topic {
	var out []*Topic
	for _, t := range p.Topics {
		if t.Kind == TopicRoot {
			out = append(out, t)
		}
	}
	return out
}

// NormalTopics returns the non-root topics in stored order.
func (p *Project) NormalTopics() []*Topic {
	var out []*Topic
	for _, t := range p.Topics {
		if t.Kind != TopicRoot {
			out = append(out, t)
		}
	}
	return out
}
