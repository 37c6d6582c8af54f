// Package ports defines the driven-side interfaces of statuml. Adapters
// (memory, file, redis) implement them; the HTTP server and the CLI depend only on
// the interfaces, following Hexagonal Architecture principles.
package ports
