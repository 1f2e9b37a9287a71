package main

import "github.com/codemapper/rubyoutline/internal/cli"

func main() {
	cli.Execute()
}
