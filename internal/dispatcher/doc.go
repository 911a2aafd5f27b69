// Package dispatcher routes input actions to handlers and coordinates execution.
//
// Actions are routed in two tiers. An exact registration in the Registry
// wins; otherwise the Router looks up the namespace prefix of the action
// name ("selection.expand" goes to the "selection" namespace handler).
//
// When an action is dispatched:
//
//  1. An ExecutionContext is built from the host capabilities set on the
//     dispatcher (engine, selections, view, prompt) plus the dispatcher
//     itself as CommandRunner.
//  2. The handler is executed, with panic recovery unless disabled.
//  3. The result's ViewUpdate is applied: a Show target scrolls the view.
//  4. Metrics are recorded when enabled.
//
// Handlers may re-enter the dispatcher through ctx.Runner.RunCommand. The
// nesting depth is bounded by Config.MaxDepth.
package dispatcher
