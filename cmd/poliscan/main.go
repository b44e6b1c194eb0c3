// poliscan scores privacy policies by the risk of the data they collect.
package main

import "github.com/poliscan/poliscan/internal/cli"

func main() {
	cli.Execute()
}
