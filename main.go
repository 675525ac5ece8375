package main

import "github.com/djcass44/deb-order/cmd"

var version = "0.0.0-dev"

func main() {
	cmd.Execute(version)
}
