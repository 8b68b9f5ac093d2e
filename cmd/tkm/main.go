// TKM - Touch Keyboard & Mouse
// An on-screen keyboard and trackpad for dual-screen laptops
package main

import (
	"fmt"
	"os"

	"tkm/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
