package main

import "github.com/aticu/emdiro/cmd"

func main() {
	cmd.Execute()
}
