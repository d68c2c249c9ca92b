// Package bleerr defines the shared error vocabulary for the connection
// orchestration subsystem.
//
// Every failure that crosses a component boundary is classified with a Code.
// Components wrap underlying platform errors with Wrap so callers can branch
// on the code while the original cause remains available via errors.Unwrap.
package bleerr
