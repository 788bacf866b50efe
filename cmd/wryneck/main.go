// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"wryneck/cmd/wryneck/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
