package main

import "scraperindex/cmd/scraperindex/commands"

func main() {
	commands.Execute()
}
