package main

import (
	"github.com/luma/comms/cmd"
)

func main() {
	cmd.Execute()
}
