// Command countfit fits Poisson regression models to count data.
package main

import (
	"os"

	"github.com/arloliu/countfit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
