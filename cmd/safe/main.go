package main

import "github.com/m3o/safe/internal/cli"

func main() {
	cli.Main()
}
