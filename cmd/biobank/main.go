// Command biobank manages biobank records and serves the CRUD API.
package main

import "github.com/mesh-intelligence/biobank/internal/cli"

func main() {
	cli.Execute()
}
