// Command digenv shows the environment, sorted and paged:
//
//	digenv [GREP ARGS...]
package main

import (
	"os"

	"github.com/josephlewis42/digenv/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
