package main

import "daily-tasks/cmd/dailytasks/root"

func main() {
	root.Execute()
}
