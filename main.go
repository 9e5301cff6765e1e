package main

import "github.com/henrikvtcodes/osmium/cmd"

func main() {
	cmd.Execute()
}
