package compiler

import (
	"testing"

	"github.com/statuml/statuml/pkg/domain"
)

func TestTransitionLabel(t *testing.T) {
	instrument := domain.Instrument{Type: "SETT", Revision: "R1"}
	topic := domain.NewTopic("DVP", domain.TopicNormal)

	tests := []struct {
		name string
		tr   domain.Transition
		want string
	}{
		{
			name: "message and flow only",
			tr:   domain.Transition{Kind: domain.KindNormal, MessageType: "MSG", FlowType: "B2B"},
			want: "MSG B2B",
		},
		{
			name: "topic override alone",
			tr:   domain.Transition{Kind: domain.KindNormal, Topic: "OTHER", MessageType: "MSG", FlowType: "B2B"},
			want: "OTHER MSG B2B",
		},
		{
			name: "instrument override pulls topic default",
			tr:   domain.Transition{Kind: domain.KindNormal, Instrument: "REPO", MessageType: "MSG", FlowType: "B2B"},
			want: "REPO DVP MSG B2B",
		},
		{
			name: "revision override pulls instrument and topic defaults",
			tr:   domain.Transition{Kind: domain.KindNormal, Revision: "R2", MessageType: "MSG", FlowType: "B2B"},
			want: "R2 SETT DVP MSG B2B",
		},
		{
			name: "revision with explicit instrument and topic",
			tr: domain.Transition{
				Kind: domain.KindNormal, Revision: "R2", Instrument: "REPO", Topic: "X",
				MessageType: "MSG", FlowType: "B2B",
			},
			want: "R2 REPO X MSG B2B",
		},
		{
			name: "missing flow type yields empty",
			tr:   domain.Transition{Kind: domain.KindNormal, MessageType: "MSG"},
			want: "",
		},
		{
			name: "missing message type yields empty",
			tr:   domain.Transition{Kind: domain.KindNormal, FlowType: "B2B"},
			want: "",
		},
		{
			name: "end topic is unlabeled",
			tr:   domain.Transition{Kind: domain.KindEndTopic, MessageType: "MSG", FlowType: "B2B"},
			want: "",
		},
		{
			name: "end instrument is unlabeled",
			tr:   domain.Transition{Kind: domain.KindEndInstrument, MessageType: "MSG", FlowType: "B2B"},
			want: "",
		},
		{
			name: "routing only is unlabeled",
			tr:   domain.Transition{Kind: domain.KindNormal, RoutingOnly: true, MessageType: "MSG", FlowType: "B2B"},
			want: "",
		},
		{
			name: "start transitions are labeled",
			tr:   domain.Transition{Kind: domain.KindStartTopic, MessageType: "MSG", FlowType: "C2C"},
			want: "MSG C2C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransitionLabel(&tt.tr, instrument, topic); got != tt.want {
				t.Errorf("TransitionLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
