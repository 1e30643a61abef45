package main

import (
	"github.com/ytget/mp3get/internal/cli"
)

func main() {
	cli.Execute()
}
