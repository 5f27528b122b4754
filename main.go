package main

import "github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/cmd"

func main() {
	cmd.Execute()
}
