// Command ctcnet contracts interval constraint problems described in YAML.
//
//	ctcnet solve problem.yaml
//	ctcnet solve --ratio 0 --format json problem.yaml
//	ctcnet dot -o net.dot problem.yaml
package main

import (
	"os"

	"github.com/gitrdm/ctcnet/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.NewRootCommand()))
}
