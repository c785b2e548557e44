package main

import "purchases/internal/cli"

func main() {
	cli.Execute()
}
