package main

import (
	"os"

	"github.com/santiaoqiao/excel-mapper/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
