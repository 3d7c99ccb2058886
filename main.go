package main

import "github.com/aditmayuda/expense-tracker/cmd"

func main() {
	cmd.Execute()
}
