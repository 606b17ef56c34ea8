package main

import "github.com/flatdoc/fdoc/cmd"

func main() {
	cmd.Execute()
}
