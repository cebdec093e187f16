package main

import "github.com/jengzang/tour-planner-go/internal/cli"

func main() {
	cli.Execute()
}
