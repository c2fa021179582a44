package main

import "github.com/bradford-hamilton/chippy/cmd"

func main() {
	cmd.Execute()
}
