package main

import (
	"os"

	flowscribe "flowscribe/cmd/flowscribe"
)

func main() {
	os.Exit(flowscribe.Execute())
}
