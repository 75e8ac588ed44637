package main

import "github.com/PeterRapcsak/bailando/cmd"

func main() {
	cmd.Execute()
}
