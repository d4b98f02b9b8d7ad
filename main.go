// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/jwilges/monocat/cmd/monocat"

func main() {
	cmd.Execute()
}
