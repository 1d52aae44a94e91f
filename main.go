package main

import "github.com/doyanishi/slack-format-bot/cmd"

func main() {
	cmd.Execute()
}
