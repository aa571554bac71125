package main

import "poetry-share-backend/cmd"

func main() {
	cmd.Run()
}
