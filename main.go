// Docgenie finds undocumented JavaScript and TypeScript functions and helps
// document them.
package main

import "github.com/mouse-blink/docgenie/cmd"

func main() {
	cmd.Execute()
}
