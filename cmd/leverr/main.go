// Command leverr runs and explores Leverr programs: `leverr run <file>`
// executes a script end-to-end, `leverr repl` drives an interactive
// read-eval-print loop. Both ride the same lex/parse/infer/eval pipeline
// the internal packages implement; this command only wires them to a
// terminal.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
