package main

import "github.com/dhbw-mensa/backend/commands"

func main() {
	commands.Execute()
}
