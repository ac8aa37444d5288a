package main

import "github.com/naqiboqi/Europa-Universalis-Savegame-Viewer/internal/cli"

func main() {
	cli.Execute()
}
