// Package access holds the authorization vocabulary of the workflow engine:
// the closed set of permission codes, the Principal every operation receives
// explicitly, and the mapping from a target status to the permission a
// transition into it requires.
//
// Permission codes stay opaque strings at the storage boundary (the
// permissions.code column); inside the engine only the constants below are used,
// so a typo cannot silently grant nothing.
package access
