package main

import "github.com/Tiliavir/productivity-journal/cmd"

func main() {
	cmd.Execute()
}
