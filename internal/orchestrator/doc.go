// Package orchestrator generates proposals against the calculation engine.
// Each call probes the engine first and only dispatches the calculation when
// the probe reports healthy; otherwise the request is deferred without any
// network call to the compute endpoint. Failures after dispatch are returned
// to the caller as-is; there is no fallback once the engine has been called.
package orchestrator
