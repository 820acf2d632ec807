package main

import "github.com/snoody/tft-tierlist/internal/cli"

func main() {
	cli.Execute()
}
