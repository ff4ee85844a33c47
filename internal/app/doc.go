// Package app contains the core application logic. It wires the description
// loader, the step registry and the resolver together and renders the
// results, decoupled from any specific entrypoint like a CLI.
package app
