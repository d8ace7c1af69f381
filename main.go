package main

import "github.com/campuskitchen/surplusmart/cmd"

func main() {
	cmd.Execute()
}
