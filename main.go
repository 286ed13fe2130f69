package main

import "table-importer/cmd"

func main() {
	cmd.Execute()
}
