package main

import (
	"github.com/C21MS0N/kurimu-words/internal/cli"
)

func main() {
	cli.Execute()
}
