// Package orchestrator runs build passes: it resolves field attributes from
// an inspector, dispatches them to a widget builder, post-processes the
// results and collects them into a Form that can be rendered, filled and
// saved back to the inspected object.
package orchestrator
