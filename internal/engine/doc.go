// Package engine is a local stand-in for the remote calculation engine. It
// serves the same health and calculate endpoints the gateway calls and
// applies the engine's access checks: a bearer credential is required and its
// plan claim must match the requested plan.
package engine
