package main

import "github.com/cursor-id-reset/cursor-id-reset/cmd"

func main() {
	cmd.Execute()
}
