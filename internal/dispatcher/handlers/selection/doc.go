// Package selection provides the "selection" namespace handler.
//
// Every command reads the current selections from the execution context,
// computes the new set with the pure transforms in engine/cursor and
// writes it back with a single SetAll call. Commands with nothing to act
// on (no selections, no active view) return a no-op result.
//
// Split without a separator argument opens an input panel and returns an
// async result. Confirming the panel dispatches selection.split again with
// the typed text; cancelling leaves the selections untouched.
package selection
