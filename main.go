package main

import "github.com/qjroberts/xenforo-scraper/cmd"

func main() {
	cmd.Execute()
}
