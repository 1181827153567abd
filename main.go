package main

import (
	"github.com/joho/godotenv"
	"github.com/tieubaoca/pdfchat-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	// Optional; the API keys may come from the real environment instead.
	_ = godotenv.Load()
}
