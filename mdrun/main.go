// Command mdrun runs the molecular-dynamics demonstration of
// coordinate-addressed random number generation.
package main

import "github.com/mdsimlab/counterrand/mdrun/cmd"

func main() {
	cmd.Execute()
}
