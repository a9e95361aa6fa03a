package main

import "notekeeper/cli"

func main() {
	cli.Execute()
}
