package main

import "github.com/fync-dev/fync-auth/cmd/fyncctl/cmd"

func main() {
	cmd.Execute()
}
