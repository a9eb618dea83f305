package main

import "github.com/chrisdamba/roaddash/cmd"

func main() {
	cmd.Execute()
}
