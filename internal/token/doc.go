// Package token issues the bearer credential the gateway attaches to engine
// calls.
//
// Credentials are JWT-shaped but unsigned: the third segment is a constant
// placeholder and carries no integrity guarantee. Nothing downstream may rely
// on it for authentication; it exists so the engine can read the plan claim
// from a header in the expected format.
package token
