package main

import (
	"github.com/bondit-dk/dnscheck/cmd"
)

func main() {
	cmd.Execute()
}
