// SPDX-License-Identifier: MIT

// Command statql fits ordinary least-squares regressions on the statql
// array runtime.
package main

func main() {
	execute()
}
