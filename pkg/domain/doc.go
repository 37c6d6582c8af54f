/*
Package domain contains the core domain models of a statuml project: the
Instrument, its Topics (one message-flow state machine each), and the
StateNodes and Transitions that make up a topic graph.

This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Instrument: The modeled instrument (type + revision identity).
  - Topic: A single state machine; root topics model instrument entry, normal
    topics model sub-flows.
  - StateNode: A point in the graph. Either a user state (free label, generated
    id) or a system node (fixed token: topic start/end, instrument entry/end,
    routing fork).
  - Transition: An edge between two states. Its Kind and RoutingOnly flag are
    derived from the endpoint nodes by Classify and recomputed at the single
    mutation entry point (Reconnect); consumers must never set them by hand.
*/
package domain
