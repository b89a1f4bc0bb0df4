package main

import "github.com/KaramelBytes/pipeview/cmd"

func main() {
	cmd.Execute()
}
