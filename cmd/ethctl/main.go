// ethctl is the command-line convenience wrapper over ethcore: deriving
// addresses, signing transactions, and encoding ABI calldata without
// writing Go.
package main

import "github.com/ethcore-go/ethcore/cmd/ethctl/cmd"

func main() {
	cmd.Execute()
}
