// Package interp implements the command interpreter: the line tokenizer,
// the per-command argument validators, and the dispatcher that maps a
// command word to its handler and renders the success/error text contract.
//
// Every recognized failure is a CommandError carrying one of the closed
// error kinds; the dispatcher renders it as
//
//	Error <Kind>: <original line>
//
// and a successful command as
//
//	Command success: <original line>
//
// followed by any table output the command produces. Validation always
// precedes mutation, so a failed command leaves the store untouched.
package interp
