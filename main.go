package main

import "github.com/Mohsinsiddi/fundraiser/cmd"

func main() {
	cmd.Execute()
}
