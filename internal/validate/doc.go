// Package validate checks the guides manifest against the guide store on
// disk. The check runs in both directions: every enabled entry must resolve
// to a readable file under the guides root, and every guide file under the
// root must be referenced by some entry (enabled or disabled). Problems are
// collected exhaustively into a report rather than failing at the first one,
// so a single CI run surfaces every drift at once.
package validate
