package main

import (
	"github.com/jiffoo/mallctl/cmd"
)

func main() {
	cmd.Execute()
}
