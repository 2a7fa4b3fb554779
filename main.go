// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/venvkit/venvkit/cmd/venvkit"

func main() {
	cmd.Execute()
}
