// Package input defines the actions exchanged between input sources
// (keymaps, scripts, prompts) and the dispatcher.
//
// An Action names a command in "namespace.action" form and carries its
// arguments in ActionArgs. Typed accessors distinguish an argument that is
// absent from one explicitly set to its zero value, which matters for
// commands such as selection.split where an empty separator is meaningful.
//
//	action := input.NewAction("selection.split").WithArg("separator", ",")
//	sep, ok := action.Args.GetStringOK("separator")
package input
