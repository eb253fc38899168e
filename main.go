// Command treeport renders test results as a tree-shaped console report.
package main

import "github.com/mouse-blink/treeport/cmd"

func main() {
	cmd.Execute()
}
