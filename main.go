package main

import "github.com/AdminBXVentures/embedbroker/cmd"

func main() {
	cmd.Execute()
}
