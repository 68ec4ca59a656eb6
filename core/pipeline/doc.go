// Package pipeline runs the fixed pipeline
//
//	printenv [| grep ARGS...] | sort | pager
//
// by creating the processes and wiring their standard streams directly,
// without a shell.
//
// The parent process never reads or writes pipeline data. It allocates one
// pipe per pair of adjacent stages, starts the stages from left to right,
// closes its copies of each pipe as soon as both neighbours hold their ends,
// and finally reaps every child into a single exit status.
package pipeline
