package main

import "github.com/mcoot/linkgame/internal/cli"

func main() {
	cli.Execute()
}
