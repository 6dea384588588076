package main

import "github.com/pageza/recipeshare/backend/internal/cli"

func main() {
	cli.Execute()
}
