package main

import "github.com/Aldo97/iOSLocalizationEditor/internal/cli"

func main() {
	cli.Execute()
}
