package main

import "github.com/voteroom/voteroom/cmd"

func main() {
	cmd.Execute()
}
