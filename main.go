package main

import "fieldstats/cmd"

func main() {
	cmd.Execute()
}
