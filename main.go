package main

import "github.com/velin-dev/uisketch/cmd"

func main() {
	cmd.Execute()
}
