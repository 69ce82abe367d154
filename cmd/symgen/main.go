package main

import "github.com/OpenTraceLab/kicad-symgen/cmd/symgen/cmd"

func main() {
	cmd.Execute()
}
