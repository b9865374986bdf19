package main

import "mangacat/cli"

func main() {
	cli.Execute()
}
