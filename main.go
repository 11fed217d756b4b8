package main

import "github.com/llehouerou/beatsnslices/internal/cli"

func main() {
	cli.Execute()
}
