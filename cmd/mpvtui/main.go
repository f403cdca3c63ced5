package main

import "github.com/dewi-tim/mpvtui/internal/cli"

func main() {
	cli.Execute()
}
