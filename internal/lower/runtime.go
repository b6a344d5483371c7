package lower

import "jsxstream/internal/style"

// Runtime names what generated code expects to find in the environment.
type Runtime struct {
	// Stringify(value, later) renders a child value; component results
	// `[html, fn]` push fn onto the later collector.
	Stringify string
	// PlaceholderTag is the host element standing in for a deferred child.
	PlaceholderTag string
	Style          style.Runtime
}

func DefaultRuntime() Runtime {
	return Runtime{
		Stringify:      "global.___FRAMEWORK_JS_STRINGIFY___",
		PlaceholderTag: "div",
		Style:          style.DefaultRuntime(),
	}
}

func (rt Runtime) withDefaults() Runtime {
	def := DefaultRuntime()
	if rt.Stringify == "" {
		rt.Stringify = def.Stringify
	}
	if rt.PlaceholderTag == "" {
		rt.PlaceholderTag = def.PlaceholderTag
	}
	if rt.Style.StyleName == "" {
		rt.Style.StyleName = def.Style.StyleName
	}
	if rt.Style.StyleValue == "" {
		rt.Style.StyleValue = def.Style.StyleValue
	}
	if rt.Style.StyleObject == "" {
		rt.Style.StyleObject = def.Style.StyleObject
	}
	return rt
}
