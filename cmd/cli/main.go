package main

import "github.com/alimgiray/gstats/internal/cli"

func main() {
	cli.Execute()
}
