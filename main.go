package main

import "github.com/lc3kit/lc3kit/cmd"

func main() {
	cmd.Execute()
}
