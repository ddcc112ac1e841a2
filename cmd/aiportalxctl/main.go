package main

import "github.com/waqarniyazi/aiportalx/internal/cli"

func main() {
	cli.Execute()
}
