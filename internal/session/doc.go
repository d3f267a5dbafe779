// Package session implements the click-to-blur edit state machine.
//
// A Session is created for one loaded image and lives until the user quits.
// It has exactly two states:
//
//	Active ──quit (save or discard)──▶ Terminated
//
// While Active it accepts pointer moves, clicks, and the seven key commands
// (radius up/down, blur up/down, undo, save and quit, quit without saving).
// Once Terminated every operation returns ErrTerminated.
//
// # Parameters
//
// Radius runs from 10 to 300 in steps of 10 (default 50). Kernel size runs
// from 11 to 199 in steps of 10 (default 51). The stored kernel size is made
// odd only when a blur is applied, via KernelSize|1.
//
// # Undo
//
// Every click that blurs something first pushes a full copy of the image onto
// the history. Undo pops the newest copy and makes it the live image. Undo on
// an empty history leaves the image alone and reports ErrEmptyHistory, which
// Dispatch turns into a "Nothing to undo." notice.
//
// # Concurrency
//
// Sessions are not safe for concurrent use. Every operation runs to completion
// before returning, so a single caller driving the session sees each command
// as atomic.
package session
