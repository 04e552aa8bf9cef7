package main

import "staybnb-backend/cmd"

func main() {
	cmd.Run()
}
