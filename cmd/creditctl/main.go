package main

import "github.com/urjitutjit/creditapprovalsystem/internal/cli"

func main() {
	cli.Execute()
}
