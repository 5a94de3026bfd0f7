package main

import "github.com/iksnae/termchat/cmd"

func main() {
	cmd.Execute()
}
