package main

import "docsorter/cmd/sortctl/cmd"

func main() {
	cmd.Execute()
}
