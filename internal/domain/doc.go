// Package domain holds the core entity types shared by the service,
// repository, API, and worker layers. Types here carry no behavior beyond
// simple state predicates; all persistence and business logic lives in the
// layers that consume them.
package domain
