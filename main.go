package main

import "github.com/papapumpkin/vcdscope/cmd"

func main() {
	cmd.Execute()
}
