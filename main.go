// Recall - A command-line note and reminder tool
//
// Copyright (c) Manav Panchal
//
// Licensed under the SEGV License, Version 1.0
// See LICENSE file for full license text.

package main

import (
	"os"

	"github.com/manav03panchal/recall/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
