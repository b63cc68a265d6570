package main

import (
	"questflow/cmd/client/cmd"
)

func main() {
	cmd.Execute()
}
