package main

import "github.com/community-of-python/redos-linter/cmd"

func main() {
	cmd.Execute()
}
