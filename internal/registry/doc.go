// Package registry provides the central "glue" between constructor
// directives in model trees and compiled Go code.
//
// The Registry stores mappings between the factory identifiers referenced by
// `_constructor` entries (e.g. "Spring") and the Go factory functions that
// build the corresponding physical components. Component libraries register
// themselves through the Module interface during application startup;
// duplicate names are a programmer error and panic immediately.
package registry
