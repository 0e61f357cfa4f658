package main

import "codetools/src/handler/cli"

func main() {
	cli.Run()
}
