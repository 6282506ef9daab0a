package main

import "rods-warden/cmd"

func main() {
	cmd.Execute()
}
