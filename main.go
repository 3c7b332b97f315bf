package main

import "club-portal-system/cmd/server"

func main() {
	server.Init()
	server.Run()
}
