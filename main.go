package main

import "github.com/twiced-technology-gmbh/duewatch/cmd"

func main() {
	cmd.Execute()
}
