package main

import "bagsync/cmd/client/cmd"

func main() {
	cmd.Execute()
}
