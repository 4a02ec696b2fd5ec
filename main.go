// Copyright © 2024 The d64 authors.

package main

import (
	"github.com/cbmtools/d64/cmd"
)

func main() {
	cmd.Execute()
}
